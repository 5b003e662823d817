package dto

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"from must not be after to"`
}

// JourneyData is one session journey row.
type JourneyData struct {
	SessionKey  string    `json:"session_key"`
	SessionDate string    `json:"session_date" example:"2026-08-01"`
	UserID      string    `json:"user_id"`
	Start       time.Time `json:"session_start"`
	End         time.Time `json:"session_end"`
	DurationMs  int64     `json:"duration_ms"`

	TotalEvents     int `json:"total_events"`
	SearchCount     int `json:"search_count"`
	ResultCount     int `json:"result_count"`
	ClickCount      int `json:"click_count"`
	ZeroResultCount int `json:"zero_result_count"`
	UniqueTerms     int `json:"unique_terms"`

	MsSearchToResult *int64 `json:"ms_search_to_result,omitempty"`
	MsResultToClick  *int64 `json:"ms_result_to_click,omitempty"`

	Outcome           string `json:"outcome" example:"Success"`
	HadReformulation  bool   `json:"had_reformulation"`
	RecoveredFromZero bool   `json:"recovered_from_zero"`
	MultiTabBrowsing  bool   `json:"multi_tab_browsing"`
	IsFirstSession    bool   `json:"is_first_session"`
	Complexity        string `json:"complexity" example:"Medium"`
}

// GetJourneysResponse is the journey list for a date range.
type GetJourneysResponse struct {
	From     string        `json:"from" example:"2026-08-01"`
	To       string        `json:"to" example:"2026-08-07"`
	Count    int           `json:"count"`
	Journeys []JourneyData `json:"journeys"`
}

// DailyAggregateData is one date-grain row. Counts are raw; the reporting
// layer divides.
type DailyAggregateData struct {
	SessionDate string `json:"session_date" example:"2026-08-01"`

	TotalEvents    int `json:"total_events"`
	UniqueSessions int `json:"unique_sessions"`
	UniqueUsers    int `json:"unique_users"`
	UniqueTerms    int `json:"unique_terms"`

	SearchCount        int `json:"search_count"`
	ResultCount        int `json:"result_count"`
	ClickCount         int `json:"click_count"`
	ZeroResultCount    int `json:"zero_result_count"`
	FirstSearchesOfDay int `json:"first_searches_of_day"`

	ResultClicks         int `json:"result_clicks"`
	ViewMoreClicks       int `json:"view_more_clicks"`
	TrendingClicks       int `json:"trending_clicks"`
	TabClicks            int `json:"tab_clicks"`
	PaginationAllClicks  int `json:"pagination_all_clicks"`
	PaginationNewsClicks int `json:"pagination_news_clicks"`
	PaginationGoToClicks int `json:"pagination_goto_clicks"`
	FilterClicks         int `json:"filter_clicks"`

	SumTermLength int `json:"sum_term_length"`
	SumTermWords  int `json:"sum_term_words"`
	TermSamples   int `json:"term_samples"`

	NewUsers       int `json:"new_users"`
	ReturningUsers int `json:"returning_users"`
}

// GetDailyAggregatesResponse is the daily aggregate list for a range.
type GetDailyAggregatesResponse struct {
	From string               `json:"from" example:"2026-08-01"`
	To   string               `json:"to" example:"2026-08-07"`
	Days []DailyAggregateData `json:"days"`
}

// TermAggregateData is one (date, term)-grain row.
type TermAggregateData struct {
	SessionDate string `json:"session_date" example:"2026-08-01"`
	Term        string `json:"term" example:"budget report"`

	SearchCount     int `json:"search_count"`
	ResultCount     int `json:"result_count"`
	ZeroResultCount int `json:"zero_result_count"`
	DiscoveryClicks int `json:"discovery_clicks"`
	OtherClicks     int `json:"other_clicks"`
	UniqueSessions  int `json:"unique_sessions"`

	SumResultTotal int64 `json:"sum_result_total"`
	ResultSamples  int   `json:"result_samples"`

	FirstSeenDate string `json:"first_seen_date,omitempty" example:"2026-07-15"`
	IsNewTerm     bool   `json:"is_new_term"`
}

// GetTermAggregatesResponse is the term aggregate list for a range.
type GetTermAggregatesResponse struct {
	From  string              `json:"from" example:"2026-08-01"`
	To    string              `json:"to" example:"2026-08-07"`
	Term  string              `json:"term,omitempty"`
	Terms []TermAggregateData `json:"terms"`
}

// JourneyRollupData is one permanent daily journey rollup row.
type JourneyRollupData struct {
	SessionDate  string `json:"session_date" example:"2026-05-01"`
	SessionCount int    `json:"session_count"`

	SuccessCount   int `json:"success_count"`
	EngagedCount   int `json:"engaged_count"`
	NoResultsCount int `json:"no_results_count"`
	AbandonedCount int `json:"abandoned_count"`
	UnknownCount   int `json:"unknown_count"`

	ReformulationCount int `json:"reformulation_count"`
	RecoveredCount     int `json:"recovered_count"`
	MultiTabCount      int `json:"multi_tab_count"`
	FirstSessionCount  int `json:"first_session_count"`

	TotalEvents     int `json:"total_events"`
	TotalSearches   int `json:"total_searches"`
	TotalResults    int `json:"total_results"`
	TotalClicks     int `json:"total_clicks"`
	TotalZeroResult int `json:"total_zero_result"`

	SumDurationMs         int64 `json:"sum_duration_ms"`
	SumMsSearchToResult   int64 `json:"sum_ms_search_to_result"`
	SearchToResultSamples int   `json:"search_to_result_samples"`
	SumMsResultToClick    int64 `json:"sum_ms_result_to_click"`
	ResultToClickSamples  int   `json:"result_to_click_samples"`
}

// GetJourneyRollupsResponse is the rollup list for a range.
type GetJourneyRollupsResponse struct {
	From string              `json:"from" example:"2026-05-01"`
	To   string              `json:"to" example:"2026-05-31"`
	Days []JourneyRollupData `json:"days"`
}
