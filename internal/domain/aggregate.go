package domain

// DailyAggregate is the date-grain rollup of enriched events. Rate inputs
// are stored as separate numerators and denominators so that consumers can
// compute correctly weighted ratios over any date range; nothing here is
// pre-divided.
type DailyAggregate struct {
	SessionDate string `ch:"session_date"`

	TotalEvents    int `ch:"total_events"`
	UniqueSessions int `ch:"unique_sessions"`
	UniqueUsers    int `ch:"unique_users"`
	UniqueTerms    int `ch:"unique_terms"`

	SearchCount        int `ch:"search_count"`
	ResultCount        int `ch:"result_count"`
	ClickCount         int `ch:"click_count"`
	ZeroResultCount    int `ch:"zero_result_count"`
	FirstSearchesOfDay int `ch:"first_searches_of_day"`

	ResultClicks         int `ch:"result_clicks"`
	ViewMoreClicks       int `ch:"view_more_clicks"`
	TrendingClicks       int `ch:"trending_clicks"`
	TabClicks            int `ch:"tab_clicks"`
	PaginationAllClicks  int `ch:"pagination_all_clicks"`
	PaginationNewsClicks int `ch:"pagination_news_clicks"`
	PaginationGoToClicks int `ch:"pagination_goto_clicks"`
	FilterClicks         int `ch:"filter_clicks"`

	// Term-shape sums with their sample count.
	SumTermLength int `ch:"sum_term_length"`
	SumTermWords  int `ch:"sum_term_words"`
	TermSamples   int `ch:"term_samples"`

	NewUsers       int `ch:"new_users"`
	ReturningUsers int `ch:"returning_users"`
}

// TermAggregate is the (date, attributed term)-grain rollup. Result and
// click events carry no query text of their own; they are attributed to the
// enricher's carried-forward active term.
type TermAggregate struct {
	SessionDate string `ch:"session_date"`
	Term        string `ch:"term"`

	SearchCount     int `ch:"search_count"`
	ResultCount     int `ch:"result_count"`
	ZeroResultCount int `ch:"zero_result_count"`
	DiscoveryClicks int `ch:"discovery_clicks"`
	OtherClicks     int `ch:"other_clicks"`
	UniqueSessions  int `ch:"unique_sessions"`

	SumResultTotal int64 `ch:"sum_result_total"`
	ResultSamples  int   `ch:"result_samples"`

	FirstSeenDate string `ch:"first_seen_date"`
	IsNewTerm     bool   `ch:"is_new_term"`
}

// DailyJourneyAggregate is the permanent date-grain condensation of Journey
// rows. Once a date's journeys are purged by the retention rollup this row
// is the sole surviving record of them.
type DailyJourneyAggregate struct {
	SessionDate string `ch:"session_date"`

	SessionCount int `ch:"session_count"`

	SuccessCount   int `ch:"success_count"`
	EngagedCount   int `ch:"engaged_count"`
	NoResultsCount int `ch:"no_results_count"`
	AbandonedCount int `ch:"abandoned_count"`
	UnknownCount   int `ch:"unknown_count"`

	ReformulationCount int `ch:"reformulation_count"`
	RecoveredCount     int `ch:"recovered_count"`
	MultiTabCount      int `ch:"multi_tab_count"`
	FirstSessionCount  int `ch:"first_session_count"`

	TotalEvents     int `ch:"total_events"`
	TotalSearches   int `ch:"total_searches"`
	TotalResults    int `ch:"total_results"`
	TotalClicks     int `ch:"total_clicks"`
	TotalZeroResult int `ch:"total_zero_result"`

	SumDurationMs int64 `ch:"sum_duration_ms"`

	SumMsSearchToResult   int64 `ch:"sum_ms_search_to_result"`
	SearchToResultSamples int   `ch:"search_to_result_samples"`
	SumMsResultToClick    int64 `ch:"sum_ms_result_to_click"`
	ResultToClickSamples  int   `ch:"result_to_click_samples"`
}

// OutcomeCount returns the stored count for the given outcome.
func (a *DailyJourneyAggregate) OutcomeCount(o Outcome) int {
	switch o {
	case OutcomeSuccess:
		return a.SuccessCount
	case OutcomeEngaged:
		return a.EngagedCount
	case OutcomeNoResults:
		return a.NoResultsCount
	case OutcomeAbandoned:
		return a.AbandonedCount
	case OutcomeUnknown:
		return a.UnknownCount
	}
	return 0
}
