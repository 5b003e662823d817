package normalizer

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// Column fallback orders across the exporter schema versions we have seen.
// The first present, non-empty column wins; if none is present the derived
// field stays empty for the batch.
var (
	timestampColumns   = []string{"timestamp", "TimeGenerated"}
	eventTypeColumns   = []string{"name", "event_name", "eventType"}
	userIDColumns      = []string{"user_id", "user_Id", "userId"}
	sessionIDColumns   = []string{"session_id", "session_Id", "sessionId"}
	queryColumns       = []string{"CP_searchQuery", "searchQuery", "query"}
	resultCountColumns = []string{"CP_totalResultCount", "totalResultCount"}
)

// Timestamp layouts accepted from the exporter. The dotted layouts cover
// German-locale exports.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

// Normalizer canonicalizes raw exporter rows into RawEvents: event tags are
// upper-cased, timestamps parsed as UTC, legacy column names reconciled and
// duplicate rows collapsed by natural key.
type Normalizer struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize converts exporter rows into deduplicated RawEvents in arrival
// order. Rows without a parseable timestamp, a user id or a session id are
// dropped (they cannot be sequenced); everything else degrades field by
// field rather than failing the batch.
func (n *Normalizer) Normalize(rows []Row) []*domain.RawEvent {
	byKey := make(map[string]*domain.RawEvent, len(rows))
	order := make([]string, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		ts, ok := parseTimestamp(pick(row, timestampColumns))
		if !ok {
			dropped++
			continue
		}

		userID := strings.TrimSpace(pick(row, userIDColumns))
		sessionID := strings.TrimSpace(pick(row, sessionIDColumns))
		eventType := strings.ToUpper(strings.TrimSpace(pick(row, eventTypeColumns)))
		if userID == "" || sessionID == "" || eventType == "" {
			dropped++
			continue
		}

		event := &domain.RawEvent{
			Timestamp:       ts,
			EventType:       eventType,
			UserID:          userID,
			SessionID:       sessionID,
			Query:           pick(row, queryColumns),
			ResultCountRaw:  strings.TrimSpace(pick(row, resultCountColumns)),
			ClickedPosition: strings.TrimSpace(row["CP_clickedPosition"]),
			ClickedTab:      strings.TrimSpace(row["CP_clickedTab"]),
			ClickedTitle:    strings.TrimSpace(row["CP_clickedTitle"]),
			ClickedURL:      strings.TrimSpace(row["CP_clickedUrl"]),
			AppliedFilter:   strings.TrimSpace(row["CP_appliedFilter"]),
			QueryLanguage:   strings.TrimSpace(row["CP_queryLanguage"]),
			Device:          strings.TrimSpace(row["device"]),
			Department:      strings.TrimSpace(row["department"]),
			Location:        strings.TrimSpace(row["location"]),
			Seq:             uint64(i),
		}

		key := event.NaturalKey()
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		// Later rows for the same natural key supersede earlier ones.
		byKey[key] = event
	}

	events := make([]*domain.RawEvent, 0, len(order))
	for _, key := range order {
		events = append(events, byKey[key])
	}

	if dropped > 0 {
		n.log.Warn("Dropped rows missing timestamp, user or session",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(events)))
	}

	return events
}

// NormalizeTerm lowercases and trims raw query text. It is the single
// definition of term identity used by the enricher and both aggregators.
func NormalizeTerm(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// pick returns the first non-empty value among the fallback columns.
func pick(row Row, columns []string) string {
	for _, col := range columns {
		if v, ok := row[col]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
