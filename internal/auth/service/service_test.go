package service

import (
	"context"
	"errors"
	"testing"

	"crm_calendar_backend/internal/crm"
	"crm_calendar_backend/platform/apperr"
	"crm_calendar_backend/platform/config"
	"crm_calendar_backend/platform/logger"
)

type fakeActivator struct {
	calls  int
	result crm.ActivationResult
	err    error
}

func (f *fakeActivator) Activate(_ context.Context, _, _ string) (crm.ActivationResult, error) {
	f.calls++
	if f.err != nil {
		return crm.ActivationResult{}, f.err
	}
	return f.result, nil
}

func newTestService(activator Activator) *Service {
	cfg := &config.Config{AppBaseURL: "http://localhost:5000"}
	return New(activator, cfg, logger.New("test"))
}

func TestLoginRequiresEmailBeforeAnyNetworkCall(t *testing.T) {
	activator := &fakeActivator{}

	_, err := newTestService(activator).Login(context.Background(), "", "secret")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if activator.calls != 0 {
		t.Fatalf("expected no activation call, got %d", activator.calls)
	}
}

func TestLoginRequiresPasswordBeforeAnyNetworkCall(t *testing.T) {
	activator := &fakeActivator{}

	_, err := newTestService(activator).Login(context.Background(), "a@b.c", "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if activator.calls != 0 {
		t.Fatalf("expected no activation call, got %d", activator.calls)
	}
}

func TestLoginBuildsShareLink(t *testing.T) {
	activator := &fakeActivator{
		result: crm.ActivationResult{PartitionKey: "tok-123", Email: "a@b.c"},
	}

	link, err := newTestService(activator).Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "http://localhost:5000/calendar/tok-123?salesperson=a%40b.c&df=30&db=7"
	if link != want {
		t.Fatalf("expected share link %q, got %q", want, link)
	}
	if activator.calls != 1 {
		t.Fatalf("expected one activation call, got %d", activator.calls)
	}
}

func TestLoginPassesUpstreamFailureThrough(t *testing.T) {
	upstreamErr := &crm.StatusError{StatusCode: 401, Body: []byte(`{"error":"bad credentials"}`)}
	activator := &fakeActivator{err: upstreamErr}

	_, err := newTestService(activator).Login(context.Background(), "a@b.c", "wrong")

	var statusErr *crm.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected the upstream error untouched, got %v", err)
	}
	if statusErr.StatusCode != 401 {
		t.Fatalf("expected status 401, got %d", statusErr.StatusCode)
	}
}
