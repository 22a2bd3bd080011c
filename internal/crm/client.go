package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError is returned when the CRM API answers with a non-2xx status.
// It carries the verbatim response body so callers can pass it through or
// fall back per record. Policy for non-success statuses is scoped to this
// client rather than configured globally on a shared transport.
type StatusError struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("crm api returned %d: %s", e.StatusCode, string(e.Body))
}

// Config configures the CRM API client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout when set
}

// Client is an HTTP client for the CRM API. Session tokens are supplied by
// the caller per request and never stored.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new CRM API client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

type activateRequest struct {
	Username               string `json:"username"`
	Password               string `json:"password"`
	AppID                  string `json:"appID"`
	ExistingDeviceBehavior int    `json:"existingDeviceBehavior"`
}

// Activate exchanges credentials for a CRM session token and identity.
func (c *Client) Activate(ctx context.Context, email, password string) (ActivationResult, error) {
	req := activateRequest{
		Username:               email,
		Password:               password,
		AppID:                  "crm",
		ExistingDeviceBehavior: 1,
	}

	var result ActivationResult
	if err := c.do(ctx, http.MethodPost, "/api/checkout/activate", "", req, &result); err != nil {
		return ActivationResult{}, err
	}
	return result, nil
}

type appointmentSearchRequest struct {
	Assigned  []string `json:"assigned"`
	Type      string   `json:"type"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

// SearchAppointments returns the appointments matching the search window,
// in upstream order.
func (c *Client) SearchAppointments(ctx context.Context, token string, search SearchRequest) ([]Appointment, error) {
	assigned := search.Assigned
	if assigned == nil {
		assigned = []string{}
	}
	req := appointmentSearchRequest{
		Assigned:  assigned,
		Type:      "Appointment",
		StartDate: search.WindowStart.UTC().Format(time.RFC3339),
		EndDate:   search.WindowEnd.UTC().Format(time.RFC3339),
	}

	var appointments []Appointment
	if err := c.do(ctx, http.MethodPost, "/api/calendar/search", token, req, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// GetOpportunity fetches the opportunity detail for a single appointment.
func (c *Client) GetOpportunity(ctx context.Context, token, opportunityID string) (Opportunity, error) {
	path := "/api/opportunity/" + url.PathEscape(opportunityID)

	var opportunity Opportunity
	if err := c.do(ctx, http.MethodGet, path, token, nil, &opportunity); err != nil {
		return Opportunity{}, err
	}
	return opportunity, nil
}

// SearchDrawingProjects fetches the drawing projects for a batch of
// opportunity ids in one call. A successful response may cover only a subset
// of the requested ids; opportunities without projects are simply omitted.
func (c *Client) SearchDrawingProjects(ctx context.Context, token string, opportunityIDs []string) ([]DrawingProject, error) {
	if opportunityIDs == nil {
		opportunityIDs = []string{}
	}

	var projects []DrawingProject
	if err := c.do(ctx, http.MethodPost, "/api/opportunity/drawing", token, opportunityIDs, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}

	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Token", token)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return &StatusError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        respBody,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}
