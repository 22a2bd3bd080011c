package service

import (
	"testing"
	"time"

	"crm_calendar_backend/internal/feed/transport"
)

var normalizeNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestNormalizeSalespersonScalar(t *testing.T) {
	req := normalize(transport.FeedQuery{Salesperson: []string{"alice"}}, basicWindow, normalizeNow)

	if len(req.Assigned) != 1 || req.Assigned[0] != "alice" {
		t.Fatalf("expected [alice], got %v", req.Assigned)
	}
}

func TestNormalizeSalespersonAbsent(t *testing.T) {
	req := normalize(transport.FeedQuery{}, basicWindow, normalizeNow)

	if len(req.Assigned) != 0 {
		t.Fatalf("expected unfiltered request, got %v", req.Assigned)
	}
}

func TestNormalizeSalespersonDuplicates(t *testing.T) {
	req := normalize(transport.FeedQuery{Salesperson: []string{"alice", "bob", "alice", "bob"}}, basicWindow, normalizeNow)

	if len(req.Assigned) != 2 {
		t.Fatalf("expected 2 distinct salespersons, got %v", req.Assigned)
	}
	if req.Assigned[0] != "alice" || req.Assigned[1] != "bob" {
		t.Fatalf("expected input order preserved, got %v", req.Assigned)
	}
}

func TestNormalizeWindowDefaults(t *testing.T) {
	req := normalize(transport.FeedQuery{}, basicWindow, normalizeNow)

	if got := req.WindowStart; !got.Equal(normalizeNow.AddDate(0, 0, -14)) {
		t.Fatalf("expected window start 14 days back, got %v", got)
	}
	if got := req.WindowEnd; !got.Equal(normalizeNow.AddDate(0, 0, 90)) {
		t.Fatalf("expected window end 90 days ahead, got %v", got)
	}
}

func TestNormalizeWindowOverrides(t *testing.T) {
	req := normalize(transport.FeedQuery{DaysBefore: "3", DaysForward: "10"}, deepWindow, normalizeNow)

	if got := req.WindowStart; !got.Equal(normalizeNow.AddDate(0, 0, -3)) {
		t.Fatalf("expected window start 3 days back, got %v", got)
	}
	if got := req.WindowEnd; !got.Equal(normalizeNow.AddDate(0, 0, 10)) {
		t.Fatalf("expected window end 10 days ahead, got %v", got)
	}
}

func TestNormalizeMalformedOverridesFallBack(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "1.5", " 7"} {
		req := normalize(transport.FeedQuery{DaysBefore: raw, DaysForward: raw}, deepWindow, normalizeNow)

		if got := req.WindowStart; !got.Equal(normalizeNow.AddDate(0, 0, -deepWindow.before)) {
			t.Fatalf("override %q: expected default window start, got %v", raw, got)
		}
		if got := req.WindowEnd; !got.Equal(normalizeNow.AddDate(0, 0, deepWindow.forward)) {
			t.Fatalf("override %q: expected default window end, got %v", raw, got)
		}
	}
}

func TestNormalizeWindowInvariant(t *testing.T) {
	for _, q := range []transport.FeedQuery{
		{},
		{DaysBefore: "0", DaysForward: "0"},
		{DaysBefore: "365", DaysForward: "1"},
		{DaysBefore: "junk", DaysForward: "junk"},
	} {
		req := normalize(q, basicWindow, normalizeNow)
		if req.WindowStart.After(req.WindowEnd) {
			t.Fatalf("window start %v after end %v for query %+v", req.WindowStart, req.WindowEnd, q)
		}
	}
}
