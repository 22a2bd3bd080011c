package service

import (
	"context"
	"strings"
	"time"

	"crm_calendar_backend/internal/crm"
	"crm_calendar_backend/internal/feed/transport"
	"crm_calendar_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// enrichmentConcurrency bounds the fan-out of per-appointment opportunity
// lookups in the deep strategy.
const enrichmentConcurrency = 8

// Upstream provides the slice of the CRM API needed by the feed pipeline.
type Upstream interface {
	SearchAppointments(ctx context.Context, token string, search crm.SearchRequest) ([]crm.Appointment, error)
	GetOpportunity(ctx context.Context, token, opportunityID string) (crm.Opportunity, error)
	SearchDrawingProjects(ctx context.Context, token string, opportunityIDs []string) ([]crm.DrawingProject, error)
}

// Entry is a normalized calendar event ready for rendering. One entry is
// produced per appointment, except in the measure strategy where
// appointments without a matching project are dropped.
type Entry struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Location    string
	Category    string
}

// Feed is an ordered set of entries with a calendar display name.
type Feed struct {
	Name    string
	Entries []Entry
}

// Service builds calendar feeds from CRM appointments. All state is
// request-scoped; the service itself holds only its dependencies.
type Service struct {
	crm Upstream
	log *logger.Logger
}

// New creates a new feed service.
func New(upstream Upstream, log *logger.Logger) *Service {
	return &Service{crm: upstream, log: log}
}

// Basic returns a feed with the bare appointment data. No enrichment calls
// are made; this is the fast path.
func (s *Service) Basic(ctx context.Context, token string, q transport.FeedQuery) (Feed, error) {
	search := normalize(q, basicWindow, time.Now())

	appointments, err := s.crm.SearchAppointments(ctx, token, search)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("appointment search", err)
		return Feed{}, err
	}

	entries := make([]Entry, 0, len(appointments))
	for _, appointment := range appointments {
		entries = append(entries, basicEntry(appointment))
	}

	return Feed{Name: feedName("CRM", search.Assigned), Entries: entries}, nil
}

type opportunityResult struct {
	opportunity crm.Opportunity
	err         error
}

// Deep returns a feed where each appointment is enriched with customer
// detail from its opportunity. Enrichment calls run concurrently with a
// bounded fan-out; a failed lookup degrades that one entry to the basic
// rendering and never aborts the rest. Output order matches appointment
// order regardless of completion order.
func (s *Service) Deep(ctx context.Context, token string, q transport.FeedQuery) (Feed, error) {
	search := normalize(q, deepWindow, time.Now())

	appointments, err := s.crm.SearchAppointments(ctx, token, search)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("appointment search", err)
		return Feed{}, err
	}

	results := make([]opportunityResult, len(appointments))
	var group errgroup.Group
	group.SetLimit(enrichmentConcurrency)
	for i, appointment := range appointments {
		group.Go(func() error {
			opportunity, err := s.crm.GetOpportunity(ctx, token, appointment.OpportunityID)
			results[i] = opportunityResult{opportunity: opportunity, err: err}
			// Branch failures become per-record fallbacks, never group errors,
			// so one failed lookup cannot cancel its siblings.
			return nil
		})
	}
	_ = group.Wait()

	entries := make([]Entry, 0, len(appointments))
	for i, appointment := range appointments {
		result := results[i]
		if result.err != nil {
			s.log.WithContext(ctx).Warn("opportunity enrichment failed, using basic entry",
				"appointment_id", appointment.ID,
				"opportunity_id", appointment.OpportunityID,
				"error", result.err.Error(),
			)
			entries = append(entries, basicEntry(appointment))
			continue
		}

		customer := result.opportunity.Customer
		entries = append(entries, measureEntry(appointment, customer.FirstName, customer.Name,
			jobLocation(customer.JobAddress, customer.JobAddress2, customer.JobCity, customer.JobState, customer.JobZIP)))
	}

	return Feed{Name: feedName("Measure Appointments", search.Assigned), Entries: entries}, nil
}

// Measure returns a feed built from one bulk drawing-project lookup.
// Appointments whose opportunity has no project are dropped; when several
// projects share an opportunity the first in upstream order wins.
func (s *Service) Measure(ctx context.Context, token string, q transport.MeasureFeedQuery) (Feed, error) {
	search := normalize(transport.FeedQuery{Salesperson: q.Salesperson}, measureWindow, time.Now())

	appointments, err := s.crm.SearchAppointments(ctx, token, search)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("appointment search", err)
		return Feed{}, err
	}

	projects, err := s.crm.SearchDrawingProjects(ctx, token, opportunityIDs(appointments))
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("drawing project search", err)
		return Feed{}, err
	}

	index := groupProjects(projects)
	entries := make([]Entry, 0, len(appointments))
	for _, appointment := range appointments {
		group := index[appointment.OpportunityID]
		if len(group) == 0 {
			continue
		}

		project := group[0]
		entries = append(entries, measureEntry(appointment, project.CustomerFirstName, project.CustomerName,
			jobLocation(project.JobAddress, project.JobAddress2, project.JobCity, project.JobState, project.JobZIP)))
	}

	return Feed{Name: feedName("Measure Appointments", search.Assigned), Entries: entries}, nil
}

// opportunityIDs collects the distinct opportunity ids in first-seen order.
func opportunityIDs(appointments []crm.Appointment) []string {
	ids := make([]string, 0, len(appointments))
	seen := make(map[string]struct{}, len(appointments))
	for _, appointment := range appointments {
		if _, ok := seen[appointment.OpportunityID]; ok {
			continue
		}
		seen[appointment.OpportunityID] = struct{}{}
		ids = append(ids, appointment.OpportunityID)
	}
	return ids
}

// groupProjects builds an ordered multimap from opportunity id to its
// projects in one pass, preserving upstream return order within each group.
func groupProjects(projects []crm.DrawingProject) map[string][]crm.DrawingProject {
	index := make(map[string][]crm.DrawingProject, len(projects))
	for _, project := range projects {
		index[project.OpportunityID] = append(index[project.OpportunityID], project)
	}
	return index
}

func basicEntry(appointment crm.Appointment) Entry {
	return Entry{
		UID:         appointment.ID,
		Start:       appointment.StartTime,
		End:         appointment.EndTime,
		Summary:     strings.ToUpper(appointment.Subject) + " - " + appointment.OpportunityName,
		Description: "Assigned to: " + appointment.Assigned + "\n" + appointment.Details,
		Category:    appointment.Assigned,
	}
}

func measureEntry(appointment crm.Appointment, firstName, lastName, location string) Entry {
	return Entry{
		UID:      appointment.ID,
		Start:    appointment.StartTime,
		End:      appointment.EndTime,
		Summary:  "MEASURE - " + firstName + " " + lastName,
		Location: location,
		Category: appointment.Assigned,
	}
}

// jobLocation joins the five address fields with single spaces. Blank
// components stay as blank segments to match the upstream concatenation.
func jobLocation(address, address2, city, state, zip string) string {
	return strings.Join([]string{address, address2, city, state, zip}, " ")
}

func feedName(prefix string, assigned []string) string {
	return prefix + " (" + strings.Join(assigned, " ") + ")"
}
