package dto

// DateRangeRequest is the shared query shape of the read endpoints: an
// inclusive ISO date range.
type DateRangeRequest struct {
	From string `form:"from" binding:"required" example:"2026-08-01"`
	To   string `form:"to" binding:"required" example:"2026-08-07"`
}

// GetJourneysRequest queries session journeys for a date range.
type GetJourneysRequest struct {
	DateRangeRequest
	Outcome string `form:"outcome" example:"Success"`
}

// GetTermAggregatesRequest queries term aggregates for a date range,
// optionally restricted to a single normalized term.
type GetTermAggregatesRequest struct {
	DateRangeRequest
	Term string `form:"term" example:"budget report"`
}
