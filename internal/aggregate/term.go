package aggregate

import (
	"sort"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// Terms rolls enriched events up to one row per (date, attributed term).
// Result displays and clicks carry no query text of their own — they are
// attributed to the enricher's carried-forward active term, which is the
// whole point of the carried-forward scan. Events with no active term yet
// (nothing searched so far in the session) are unattributable and skipped.
//
// termFirstDates maps a normalized term to the first date it was ever seen
// on; it fills the first-seen date and the new-term flag used for content
// gap and trend detection.
func Terms(events []*domain.EnrichedEvent, termFirstDates map[string]string) []*domain.TermAggregate {
	type termKey struct {
		date string
		term string
	}
	type termState struct {
		agg      *domain.TermAggregate
		sessions map[string]bool
	}

	groups := make(map[termKey]*termState)

	for _, row := range events {
		if row.ActiveTerm == "" {
			continue
		}
		if !attributable(row) {
			continue
		}

		key := termKey{date: row.SessionDate, term: row.ActiveTerm}
		s, ok := groups[key]
		if !ok {
			s = &termState{
				agg:      &domain.TermAggregate{SessionDate: key.date, Term: key.term},
				sessions: make(map[string]bool),
			}
			groups[key] = s
		}

		s.sessions[row.SessionKey] = true

		switch {
		case domain.IsSearchInitiation(row.EventType):
			s.agg.SearchCount++
		case row.EventType == domain.EventResultCount:
			s.agg.ResultCount++
			if row.IsZeroResult != nil && *row.IsZeroResult {
				s.agg.ZeroResultCount++
			}
			if row.ResultCount != nil {
				s.agg.SumResultTotal += int64(*row.ResultCount)
				s.agg.ResultSamples++
			}
		case row.IsContentDiscovery:
			s.agg.DiscoveryClicks++
		case row.IsClick():
			s.agg.OtherClicks++
		}
	}

	keys := make([]termKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].term < keys[j].term
	})

	out := make([]*domain.TermAggregate, 0, len(keys))
	for _, key := range keys {
		s := groups[key]
		s.agg.UniqueSessions = len(s.sessions)
		if first, ok := termFirstDates[key.term]; ok {
			s.agg.FirstSeenDate = first
			s.agg.IsNewTerm = first == key.date
		}
		out = append(out, s.agg)
	}
	return out
}

// attributable reports whether the event type participates in term
// attribution: searches, result displays and clicks do, anything else is
// noise for term-level reporting.
func attributable(row *domain.EnrichedEvent) bool {
	return domain.IsSearchInitiation(row.EventType) ||
		row.EventType == domain.EventResultCount ||
		row.IsClick()
}
