// Package crm provides a client for the remote CRM API: license activation,
// appointment search, opportunity lookup, and drawing-project search.
package crm

import "time"

// SearchRequest describes an appointment search window. Assigned is the set
// of salesperson identifiers to filter on; empty means no filter. The
// invariant WindowStart <= WindowEnd is guaranteed by the query normalizer.
type SearchRequest struct {
	Assigned    []string
	WindowStart time.Time
	WindowEnd   time.Time
}

// ActivationResult is the identity returned by the CRM license activation.
type ActivationResult struct {
	PartitionKey string `json:"PartitionKey"`
	Email        string `json:"Email"`
}

// Appointment is a scheduled calendar activity as returned by the CRM
// appointment search. Read-only within the pipeline; OpportunityID is the
// correlation key for enrichment joins.
type Appointment struct {
	ID              string    `json:"id"`
	OpportunityID   string    `json:"opportunityId"`
	OpportunityName string    `json:"opportunityName"`
	Assigned        string    `json:"assigned"`
	Subject         string    `json:"subject"`
	Details         string    `json:"details"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
}

// Customer holds the customer contact block of an opportunity.
type Customer struct {
	FirstName   string `json:"customerFirstName"`
	Name        string `json:"customerName"`
	JobAddress  string `json:"jobAddress"`
	JobAddress2 string `json:"jobAddress2"`
	JobCity     string `json:"jobCity"`
	JobState    string `json:"jobState"`
	JobZIP      string `json:"jobZIP"`
}

// Opportunity is the detail record fetched per appointment in the deep
// enrichment path.
type Opportunity struct {
	OpportunityID string   `json:"opportunityId"`
	Customer      Customer `json:"customer"`
}

// DrawingProject is a measure project associated with an opportunity.
// Multiple projects may share an OpportunityID.
type DrawingProject struct {
	OpportunityID     string `json:"opportunityId"`
	CustomerFirstName string `json:"customerFirstName"`
	CustomerName      string `json:"customerName"`
	JobAddress        string `json:"jobAddress"`
	JobAddress2       string `json:"jobAddress2"`
	JobCity           string `json:"jobCity"`
	JobState          string `json:"jobState"`
	JobZIP            string `json:"jobZIP"`
}
