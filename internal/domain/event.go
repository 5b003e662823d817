package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Event type tags as emitted by the telemetry exporter, after normalization
// to upper case.
const (
	EventSearchTriggered  = "SEARCH_TRIGGERED"
	EventSearchStarted    = "SEARCH_STARTED"
	EventResultCount      = "SEARCH_RESULT_COUNT"
	EventResultClick      = "SEARCH_RESULT_CLICK"
	EventViewMoreClick    = "SEARCH_VIEW_MORE_CLICK"
	EventTrendingClick    = "SEARCH_TRENDING_CLICK"
	EventTabClick         = "SEARCH_TAB_CLICK"
	EventAllTabPageClick  = "SEARCH_ALL_TAB_PAGE_CLICK"
	EventNewsTabPageClick = "SEARCH_NEWS_TAB_PAGE_CLICK"
	EventGoToTabPageClick = "SEARCH_GOTO_TAB_PAGE_CLICK"
	EventFilterClick      = "SEARCH_FILTER_CLICK"
)

// IsSearchInitiation reports whether the tag marks the start of a search.
// The exporter emits SEARCH_TRIGGERED from the UI and SEARCH_STARTED from
// the backend; both open a search for attribution purposes.
func IsSearchInitiation(eventType string) bool {
	return eventType == EventSearchTriggered || eventType == EventSearchStarted
}

// ClickCategory classifies click events by the surface that was clicked.
type ClickCategory string

const (
	ClickNone           ClickCategory = ""
	ClickResult         ClickCategory = "Result"
	ClickViewMore       ClickCategory = "ViewMore"
	ClickTrending       ClickCategory = "Trending"
	ClickTab            ClickCategory = "Tab"
	ClickPaginationAll  ClickCategory = "PaginationAll"
	ClickPaginationNews ClickCategory = "PaginationNews"
	ClickPaginationGoTo ClickCategory = "PaginationGoTo"
	ClickFilter         ClickCategory = "Filter"
)

// ClickCategories lists every category in a stable order, used by the
// aggregators when emitting per-category counts.
var ClickCategories = []ClickCategory{
	ClickResult,
	ClickViewMore,
	ClickTrending,
	ClickTab,
	ClickPaginationAll,
	ClickPaginationNews,
	ClickPaginationGoTo,
	ClickFilter,
}

// RawEvent is one normalized telemetry row as delivered by the exporter.
// Rows are immutable once ingested; a later batch carrying the same natural
// key supersedes the earlier row.
type RawEvent struct {
	Timestamp       time.Time `ch:"timestamp"`
	EventType       string    `ch:"event_type"`
	UserID          string    `ch:"user_id"`
	SessionID       string    `ch:"session_id"`
	Query           string    `ch:"query"`
	ResultCountRaw  string    `ch:"result_count_raw"`
	ClickedPosition string    `ch:"clicked_position"`
	ClickedTab      string    `ch:"clicked_tab"`
	ClickedTitle    string    `ch:"clicked_title"`
	ClickedURL      string    `ch:"clicked_url"`
	AppliedFilter   string    `ch:"applied_filter"`
	QueryLanguage   string    `ch:"query_language"`
	Device          string    `ch:"device"`
	Department      string    `ch:"department"`
	Location        string    `ch:"location"`

	// Seq is the position of the row in its ingestion batch. It is the
	// documented tie-break for events sharing a timestamp within a session.
	Seq uint64 `ch:"seq"`
}

// NaturalKey returns the deterministic identity of the row. Re-ingesting a
// row with the same key replaces the stored copy.
func (e *RawEvent) NaturalKey() string {
	data := fmt.Sprintf("%d|%s|%s|%s",
		e.Timestamp.UTC().UnixMilli(),
		e.UserID,
		e.SessionID,
		e.EventType,
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// EnrichedEvent is a RawEvent plus everything the sequence enricher and the
// business classifier derive from it.
type EnrichedEvent struct {
	RawEvent

	SessionDate string    `ch:"session_date"`
	SessionKey  string    `ch:"session_key"`
	LocalTime   time.Time `ch:"local_time"`

	// Position and timing within the session ordering.
	EventOrder    int        `ch:"event_order"`
	PrevEventType *string    `ch:"prev_event_type"`
	PrevTimestamp *time.Time `ch:"prev_timestamp"`
	MsSincePrev   *int64     `ch:"ms_since_prev"`
	GapBucket     string     `ch:"gap_bucket"`

	// Normalized query text of this row (empty when the row carries none).
	SearchTerm    string `ch:"search_term"`
	TermLength    int    `ch:"term_length"`
	TermWordCount int    `ch:"term_word_count"`

	// Carried-forward session state: the most recent search initiation and
	// the most recent non-empty term, looking backward only.
	LastSearchAt *time.Time `ch:"last_search_at"`
	ActiveTerm   string     `ch:"active_term"`

	EventHour    int `ch:"event_hour"`
	EventWeekday int `ch:"event_weekday"`

	// Classifier outputs. IsZeroResult and IsFirstSearchOfDay are nil when
	// the flag does not apply to this event type.
	ResultCount        *int          `ch:"result_count"`
	IsZeroResult       *bool         `ch:"is_zero_result"`
	ClickCategory      ClickCategory `ch:"click_category"`
	IsContentDiscovery bool          `ch:"is_content_discovery"`
	IsFirstSearchOfDay *bool         `ch:"is_first_search_of_day"`
}

// IsClick reports whether the classifier mapped this event to a click surface.
func (e *EnrichedEvent) IsClick() bool {
	return e.ClickCategory != ClickNone
}

// SessionKeyOf builds the canonical `date|user|session` key.
func SessionKeyOf(sessionDate, userID, sessionID string) string {
	return sessionDate + "|" + userID + "|" + sessionID
}

// DateOf renders the local calendar date of ts in the given location.
func DateOf(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format("2006-01-02")
}
