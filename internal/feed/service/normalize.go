package service

import (
	"strconv"
	"time"

	"crm_calendar_backend/internal/crm"
	"crm_calendar_backend/internal/feed/transport"
)

// dayWindow is the default search window for a feed route, in days around
// the current wall-clock time.
type dayWindow struct {
	before  int
	forward int
}

var (
	basicWindow = dayWindow{before: 14, forward: 90}
	deepWindow  = dayWindow{before: 7, forward: 30}
	// measureWindow is fixed; the route accepts no overrides.
	measureWindow = dayWindow{before: 14, forward: 90}
)

// normalize turns raw feed query parameters into a canonical search request.
// The window is anchored at now (UTC, taken at call time): windowStart is
// `before` days back, windowEnd is `forward` days ahead, so windowStart <=
// windowEnd always holds for non-negative day counts. Malformed or negative
// overrides silently fall back to the route default.
func normalize(q transport.FeedQuery, window dayWindow, now time.Time) crm.SearchRequest {
	before := overrideDays(q.DaysBefore, window.before)
	forward := overrideDays(q.DaysForward, window.forward)

	anchor := now.UTC()
	return crm.SearchRequest{
		Assigned:    normalizeSalespersons(q.Salesperson),
		WindowStart: anchor.AddDate(0, 0, -before),
		WindowEnd:   anchor.AddDate(0, 0, forward),
	}
}

// normalizeSalespersons applies set semantics while preserving input order:
// duplicates are removed, empty values ignored. An empty result means "no
// filter".
func normalizeSalespersons(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

func overrideDays(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return fallback
	}
	return days
}
