package domain

import "time"

// Outcome is the single, mutually exclusive classification of a session.
type Outcome string

const (
	OutcomeSuccess   Outcome = "Success"
	OutcomeEngaged   Outcome = "Engaged"
	OutcomeNoResults Outcome = "NoResults"
	OutcomeAbandoned Outcome = "Abandoned"
	OutcomeUnknown   Outcome = "Unknown"
)

// Outcomes lists every outcome in priority order.
var Outcomes = []Outcome{
	OutcomeSuccess,
	OutcomeEngaged,
	OutcomeNoResults,
	OutcomeAbandoned,
	OutcomeUnknown,
}

// Journey is the session-grain summary of one user's search activity.
// It is recomputed wholesale whenever its date is reprocessed and, once
// older than the retention horizon, is rolled into a DailyJourneyAggregate
// before the row itself is purged.
type Journey struct {
	SessionKey  string    `ch:"session_key"`
	SessionDate string    `ch:"session_date"`
	UserID      string    `ch:"user_id"`
	SessionID   string    `ch:"session_id"`
	Start       time.Time `ch:"session_start"`
	End         time.Time `ch:"session_end"`
	DurationMs  int64     `ch:"duration_ms"`

	TotalEvents     int `ch:"total_events"`
	SearchCount     int `ch:"search_count"`
	ResultCount     int `ch:"result_count"`
	ClickCount      int `ch:"click_count"`
	ZeroResultCount int `ch:"zero_result_count"`
	UniqueTerms     int `ch:"unique_terms"`

	ResultClicks         int `ch:"result_clicks"`
	ViewMoreClicks       int `ch:"view_more_clicks"`
	TrendingClicks       int `ch:"trending_clicks"`
	TabClicks            int `ch:"tab_clicks"`
	PaginationAllClicks  int `ch:"pagination_all_clicks"`
	PaginationNewsClicks int `ch:"pagination_news_clicks"`
	PaginationGoToClicks int `ch:"pagination_goto_clicks"`
	FilterClicks         int `ch:"filter_clicks"`

	AvgResultTotal *float64 `ch:"avg_result_total"`
	MaxResultTotal *int     `ch:"max_result_total"`

	// Minimum observed latencies; nil when the session never produced the
	// corresponding transition.
	MsSearchToResult *int64   `ch:"ms_search_to_result"`
	MsResultToClick  *int64   `ch:"ms_result_to_click"`
	AvgMsBetween     *float64 `ch:"avg_ms_between_events"`

	AvgTermLength *float64 `ch:"avg_term_length"`
	AvgTermWords  *float64 `ch:"avg_term_words"`

	FirstEventHour int `ch:"first_event_hour"`
	LastEventHour  int `ch:"last_event_hour"`

	IncludesFirstSearchOfDay bool `ch:"includes_first_search_of_day"`

	Outcome           Outcome `ch:"outcome"`
	HadReformulation  bool    `ch:"had_reformulation"`
	RecoveredFromZero bool    `ch:"recovered_from_zero"`
	MultiTabBrowsing  bool    `ch:"multi_tab_browsing"`
	IsFirstSession    bool    `ch:"is_first_session"`

	Complexity           string `ch:"complexity"`
	SearchToResultBucket string `ch:"search_to_result_bucket"`
	ResultToClickBucket  string `ch:"result_to_click_bucket"`
	DurationBucket       string `ch:"duration_bucket"`
}

// ClicksFor returns the per-category click count stored on the journey.
func (j *Journey) ClicksFor(cat ClickCategory) int {
	switch cat {
	case ClickResult:
		return j.ResultClicks
	case ClickViewMore:
		return j.ViewMoreClicks
	case ClickTrending:
		return j.TrendingClicks
	case ClickTab:
		return j.TabClicks
	case ClickPaginationAll:
		return j.PaginationAllClicks
	case ClickPaginationNews:
		return j.PaginationNewsClicks
	case ClickPaginationGoTo:
		return j.PaginationGoToClicks
	case ClickFilter:
		return j.FilterClicks
	}
	return 0
}

// UserFirstSeen records the earliest session a user has ever been observed
// in, persisted so incremental runs agree with a full rebuild.
type UserFirstSeen struct {
	UserID    string    `ch:"user_id"`
	FirstDate string    `ch:"first_date"`
	FirstStart time.Time `ch:"first_start"`
}

// TermFirstSeen records the first calendar date a normalized search term
// appeared on.
type TermFirstSeen struct {
	Term      string `ch:"term"`
	FirstDate string `ch:"first_date"`
}
