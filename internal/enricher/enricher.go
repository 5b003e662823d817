package enricher

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
	"github.com/dallmi/SearchAnalytics/internal/normalizer"
)

// Enricher turns normalized raw events into session-enriched events: it
// assigns session keys, orders each session, computes inter-event timing and
// carries forward the active search term and the last search-initiation
// timestamp. It must be fed whole calendar dates; the first-search-of-day
// flag is derived across all of a user's sessions on a date.
type Enricher struct {
	loc *time.Location
	log *zap.Logger
}

func New(loc *time.Location, log *zap.Logger) *Enricher {
	return &Enricher{loc: loc, log: log}
}

// Enrich produces one EnrichedEvent per RawEvent. Output is sorted by
// session key and event order, so reprocessing the same input yields an
// identical slice.
func (e *Enricher) Enrich(events []*domain.RawEvent) []*domain.EnrichedEvent {
	enriched := make([]*domain.EnrichedEvent, 0, len(events))
	sessions := make(map[string][]*domain.EnrichedEvent)

	for _, raw := range events {
		row := e.newRow(raw)
		enriched = append(enriched, row)
		sessions[row.SessionKey] = append(sessions[row.SessionKey], row)
	}

	for _, session := range sessions {
		enrichSession(session)
	}

	markFirstSearchesOfDay(enriched)

	sort.Slice(enriched, func(i, j int) bool {
		if enriched[i].SessionKey != enriched[j].SessionKey {
			return enriched[i].SessionKey < enriched[j].SessionKey
		}
		return enriched[i].EventOrder < enriched[j].EventOrder
	})

	return enriched
}

func (e *Enricher) newRow(raw *domain.RawEvent) *domain.EnrichedEvent {
	local := raw.Timestamp.In(e.loc)
	date := local.Format("2006-01-02")
	term := normalizer.NormalizeTerm(raw.Query)

	row := &domain.EnrichedEvent{
		RawEvent:    *raw,
		SessionDate: date,
		SessionKey:  domain.SessionKeyOf(date, raw.UserID, raw.SessionID),
		LocalTime:   local,

		SearchTerm:    term,
		TermLength:    utf8.RuneCountInString(term),
		TermWordCount: len(strings.Fields(term)),

		EventHour:    local.Hour(),
		EventWeekday: isoWeekday(local),
	}

	classify(row)
	return row
}

// enrichSession runs the single ordered pass over one session: ordinal
// position, previous event, elapsed time, and the two carried-forward
// values. The fold only ever looks backward, so a session without a
// search initiation keeps nil timing on every row.
func enrichSession(session []*domain.EnrichedEvent) {
	// Timestamp order; ties broken by ingestion order. Clock skew is
	// accepted as-is, no correction is attempted.
	sort.SliceStable(session, func(i, j int) bool {
		if !session[i].Timestamp.Equal(session[j].Timestamp) {
			return session[i].Timestamp.Before(session[j].Timestamp)
		}
		return session[i].Seq < session[j].Seq
	})

	var (
		lastSearchAt *time.Time
		activeTerm   string
	)

	for i, row := range session {
		row.EventOrder = i + 1

		if i > 0 {
			prev := session[i-1]
			prevType := prev.EventType
			prevTS := prev.Timestamp
			ms := row.Timestamp.Sub(prev.Timestamp).Milliseconds()

			row.PrevEventType = &prevType
			row.PrevTimestamp = &prevTS
			row.MsSincePrev = &ms
		}
		row.GapBucket = gapBucket(row.MsSincePrev)

		// Carried-forward state includes the current row.
		if domain.IsSearchInitiation(row.EventType) {
			ts := row.Timestamp
			lastSearchAt = &ts
		}
		if row.SearchTerm != "" {
			activeTerm = row.SearchTerm
		}

		row.LastSearchAt = lastSearchAt
		row.ActiveTerm = activeTerm
	}
}

// markFirstSearchesOfDay sets the flag on search-initiation events: true for
// the first initiation a user fires on a calendar date, false for the rest,
// nil for everything that is not a search initiation.
func markFirstSearchesOfDay(events []*domain.EnrichedEvent) {
	type userDay struct {
		userID string
		date   string
	}

	searches := make(map[userDay][]*domain.EnrichedEvent)
	for _, row := range events {
		if !domain.IsSearchInitiation(row.EventType) {
			continue
		}
		key := userDay{userID: row.UserID, date: row.SessionDate}
		searches[key] = append(searches[key], row)
	}

	for _, rows := range searches {
		sort.SliceStable(rows, func(i, j int) bool {
			if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
				return rows[i].Timestamp.Before(rows[j].Timestamp)
			}
			return rows[i].Seq < rows[j].Seq
		})
		for i, row := range rows {
			first := i == 0
			row.IsFirstSearchOfDay = &first
		}
	}
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func gapBucket(ms *int64) string {
	if ms == nil {
		return "First Event"
	}
	switch {
	case *ms < 500:
		return "< 0.5s"
	case *ms < 1000:
		return "0.5-1s"
	case *ms < 2000:
		return "1-2s"
	case *ms < 5000:
		return "2-5s"
	case *ms < 10000:
		return "5-10s"
	case *ms < 30000:
		return "10-30s"
	case *ms < 60000:
		return "30-60s"
	default:
		return "> 60s"
	}
}
