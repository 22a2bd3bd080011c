// Package ics adapts feed entries to the iCalendar wire format. Escaping,
// line folding, and date-time encoding are delegated to the calendar
// library; entries are passed through unescaped.
package ics

import (
	"crm_calendar_backend/internal/feed/service"

	ical "github.com/arran4/golang-ical"
)

const productID = "-//crm_calendar_backend//calendar feed//EN"

// Calendar wraps an iCalendar document under construction.
type Calendar struct {
	cal *ical.Calendar
}

// New creates an empty calendar with the given display name.
func New(name string) *Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(name)
	cal.SetXWRCalName(name)
	return &Calendar{cal: cal}
}

// Add appends one event to the calendar. The UID and DTSTAMP derive from the
// entry itself rather than the wall clock, so the same entries always render
// the same bytes.
func (c *Calendar) Add(entry service.Entry) {
	event := c.cal.AddEvent(entry.UID + "@crm-calendar")
	event.SetDtStampTime(entry.Start.UTC())
	event.SetStartAt(entry.Start.UTC())
	event.SetEndAt(entry.End.UTC())
	event.SetSummary(entry.Summary)
	if entry.Description != "" {
		event.SetDescription(entry.Description)
	}
	if entry.Location != "" {
		event.SetLocation(entry.Location)
	}
	if entry.Category != "" {
		event.AddProperty(ical.ComponentPropertyCategories, entry.Category)
	}
}

// Render serializes the calendar to ICS text.
func (c *Calendar) Render() string {
	return c.cal.Serialize()
}

// Render serializes a whole feed in entry order.
func Render(feed service.Feed) string {
	cal := New(feed.Name)
	for _, entry := range feed.Entries {
		cal.Add(entry)
	}
	return cal.Render()
}
