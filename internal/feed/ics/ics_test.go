package ics

import (
	"strings"
	"testing"
	"time"

	"crm_calendar_backend/internal/feed/service"
)

func testFeed() service.Feed {
	start := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	return service.Feed{
		Name: "CRM (alice)",
		Entries: []service.Entry{
			{
				UID:         "1",
				Start:       start,
				End:         start.Add(time.Hour),
				Summary:     "SITE VISIT - Opp A",
				Description: "Assigned to: alice\nbring samples",
				Category:    "alice",
			},
			{
				UID:      "2",
				Start:    start.Add(24 * time.Hour),
				End:      start.Add(25 * time.Hour),
				Summary:  "MEASURE - Jan Doe",
				Location: "1 Main St  Auckland AKL 1010",
				Category: "alice",
			},
		},
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	feed := testFeed()

	first := Render(feed)
	second := Render(feed)

	if first != second {
		t.Fatal("expected byte-identical output for repeated renders of the same feed")
	}
}

func TestRenderFieldMapping(t *testing.T) {
	out := Render(testFeed())

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
	for _, want := range []string{
		"UID:1@crm-calendar",
		"UID:2@crm-calendar",
		"SUMMARY:SITE VISIT - Opp A",
		"SUMMARY:MEASURE - Jan Doe",
		"DTSTART:20250620T090000Z",
		"DTEND:20250620T100000Z",
		"CATEGORIES:alice",
		"LOCATION:1 Main St  Auckland AKL 1010",
		"DESCRIPTION:Assigned to: alice",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderPreservesEntryOrder(t *testing.T) {
	out := Render(testFeed())

	first := strings.Index(out, "UID:1@crm-calendar")
	second := strings.Index(out, "UID:2@crm-calendar")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected events in entry order, got positions %d and %d", first, second)
	}
}

func TestRenderEmptyFeed(t *testing.T) {
	out := Render(service.Feed{Name: "CRM ()"})

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatalf("expected a valid empty calendar, got:\n%s", out)
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatal("expected no events in an empty feed")
	}
}
