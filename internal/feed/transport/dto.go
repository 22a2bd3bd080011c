package transport

// FeedQuery is the query parameters for the basic and deep calendar feeds.
// Day-window overrides arrive as raw query strings; parsing and defaulting
// happen in the service's normalizer, so malformed values never fail a
// request.
type FeedQuery struct {
	Salesperson []string `form:"salesperson"`
	DaysBefore  string   `form:"db"`
	DaysForward string   `form:"df"`
}

// MeasureFeedQuery is the query parameters for the measure calendar feed.
// The day window is fixed for this route and not overridable.
type MeasureFeedQuery struct {
	Salesperson []string `form:"salesperson"`
}
