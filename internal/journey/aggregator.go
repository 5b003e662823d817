package journey

import (
	"sort"
	"time"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// Aggregator collapses a session's enriched events into one Journey row.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// BuildAll groups enriched events by session key and summarizes each
// session. firstStarts maps a user id to the start of their earliest
// session ever observed (from the persisted first-seen index, already
// merged with this batch); it drives the is-first-session flag.
func (a *Aggregator) BuildAll(events []*domain.EnrichedEvent, firstStarts map[string]time.Time) []*domain.Journey {
	sessions := make(map[string][]*domain.EnrichedEvent)
	keys := make([]string, 0)
	for _, row := range events {
		if _, seen := sessions[row.SessionKey]; !seen {
			keys = append(keys, row.SessionKey)
		}
		sessions[row.SessionKey] = append(sessions[row.SessionKey], row)
	}
	sort.Strings(keys)

	journeys := make([]*domain.Journey, 0, len(keys))
	for _, key := range keys {
		j := a.Build(sessions[key])
		if first, ok := firstStarts[j.UserID]; ok {
			j.IsFirstSession = j.Start.Equal(first)
		}
		journeys = append(journeys, j)
	}
	return journeys
}

// Build summarizes one session. The events must all share a session key;
// they are re-sorted by event order so callers need not pre-sort. The
// is-first-session flag is left false here, BuildAll fills it from the
// first-seen index.
func (a *Aggregator) Build(session []*domain.EnrichedEvent) *domain.Journey {
	sort.SliceStable(session, func(i, j int) bool {
		return session[i].EventOrder < session[j].EventOrder
	})

	first := session[0]
	last := session[len(session)-1]

	j := &domain.Journey{
		SessionKey:  first.SessionKey,
		SessionDate: first.SessionDate,
		UserID:      first.UserID,
		SessionID:   first.SessionID,
		Start:       first.Timestamp,
		End:         last.Timestamp,
		DurationMs:  last.Timestamp.Sub(first.Timestamp).Milliseconds(),
		TotalEvents: len(session),
	}

	var (
		terms              = make(map[string]bool)
		categories         = make(map[domain.ClickCategory]bool)
		feats              features
		minSearchToResult  *int64
		minResultToClick   *int64
		sumGapMs           int64
		gapSamples         int
		sumResultTotal     int
		resultSamples      int
		maxResultTotal     *int
		sumTermLength      int
		sumTermWords       int
		termSamples        int
		zeroResultDisplays int
	)

	for _, row := range session {
		if domain.IsSearchInitiation(row.EventType) {
			j.SearchCount++
		}
		if row.EventType == domain.EventResultCount {
			j.ResultCount++
			feats.hasResult = true
		}
		if row.SearchTerm != "" {
			terms[row.SearchTerm] = true
			sumTermLength += row.TermLength
			sumTermWords += row.TermWordCount
			termSamples++
		}
		if row.IsFirstSearchOfDay != nil && *row.IsFirstSearchOfDay {
			j.IncludesFirstSearchOfDay = true
		}

		if row.IsZeroResult != nil && *row.IsZeroResult {
			zeroResultDisplays++
		}
		if row.ResultCount != nil {
			sumResultTotal += *row.ResultCount
			resultSamples++
			if maxResultTotal == nil || *row.ResultCount > *maxResultTotal {
				v := *row.ResultCount
				maxResultTotal = &v
			}
		}

		if row.IsClick() {
			j.ClickCount++
			categories[row.ClickCategory] = true
			a.countClick(j, row.ClickCategory)
			if row.IsContentDiscovery {
				feats.hasDiscoveryClick = true
			} else {
				feats.hasOtherClick = true
			}
		}

		if row.MsSincePrev != nil {
			sumGapMs += *row.MsSincePrev
			gapSamples++
		}

		// Fastest search-to-result transition: carried-forward initiation
		// timestamp against this result display. Sessions without any
		// initiation keep nil, no zero is fabricated.
		if row.EventType == domain.EventResultCount && row.LastSearchAt != nil {
			ms := row.Timestamp.Sub(*row.LastSearchAt).Milliseconds()
			minSearchToResult = minMs(minSearchToResult, ms)
		}

		// Fastest result-to-click transition, restricted to discovery
		// clicks that immediately follow a result display. A click after
		// another click says nothing about result scanning time.
		if row.IsContentDiscovery && row.PrevEventType != nil &&
			*row.PrevEventType == domain.EventResultCount && row.MsSincePrev != nil {
			minResultToClick = minMs(minResultToClick, *row.MsSincePrev)
		}
	}

	j.ZeroResultCount = zeroResultDisplays
	j.UniqueTerms = len(terms)
	j.MsSearchToResult = minSearchToResult
	j.MsResultToClick = minResultToClick

	if gapSamples > 0 {
		avg := float64(sumGapMs) / float64(gapSamples)
		j.AvgMsBetween = &avg
	}
	if resultSamples > 0 {
		avg := float64(sumResultTotal) / float64(resultSamples)
		j.AvgResultTotal = &avg
		j.MaxResultTotal = maxResultTotal
	}
	if termSamples > 0 {
		avgLen := float64(sumTermLength) / float64(termSamples)
		avgWords := float64(sumTermWords) / float64(termSamples)
		j.AvgTermLength = &avgLen
		j.AvgTermWords = &avgWords
	}

	j.FirstEventHour = minHour(session)
	j.LastEventHour = maxHour(session)

	feats.allResultsZero = j.ResultCount > 0 && zeroResultDisplays == j.ResultCount
	j.Outcome = classifyOutcome(feats)

	j.HadReformulation = len(terms) > 1
	j.RecoveredFromZero = zeroResultDisplays > 0 && feats.hasDiscoveryClick
	j.MultiTabBrowsing = len(categories) > 1

	j.Complexity = complexityBucket(j.TotalEvents)
	j.SearchToResultBucket = searchToResultBucket(j.MsSearchToResult)
	j.ResultToClickBucket = resultToClickBucket(j.MsResultToClick)
	j.DurationBucket = durationBucket(j.DurationMs)

	return j
}

func (a *Aggregator) countClick(j *domain.Journey, cat domain.ClickCategory) {
	switch cat {
	case domain.ClickResult:
		j.ResultClicks++
	case domain.ClickViewMore:
		j.ViewMoreClicks++
	case domain.ClickTrending:
		j.TrendingClicks++
	case domain.ClickTab:
		j.TabClicks++
	case domain.ClickPaginationAll:
		j.PaginationAllClicks++
	case domain.ClickPaginationNews:
		j.PaginationNewsClicks++
	case domain.ClickPaginationGoTo:
		j.PaginationGoToClicks++
	case domain.ClickFilter:
		j.FilterClicks++
	}
}

func minMs(current *int64, candidate int64) *int64 {
	if current == nil || candidate < *current {
		return &candidate
	}
	return current
}

func minHour(session []*domain.EnrichedEvent) int {
	h := session[0].EventHour
	for _, row := range session[1:] {
		if row.EventHour < h {
			h = row.EventHour
		}
	}
	return h
}

func maxHour(session []*domain.EnrichedEvent) int {
	h := session[0].EventHour
	for _, row := range session[1:] {
		if row.EventHour > h {
			h = row.EventHour
		}
	}
	return h
}

func complexityBucket(events int) string {
	switch {
	case events == 1:
		return "Single Event"
	case events <= 3:
		return "Simple"
	case events <= 10:
		return "Medium"
	default:
		return "Complex"
	}
}

func searchToResultBucket(ms *int64) string {
	if ms == nil {
		return "No Result"
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
	default:
		return "> 5s"
	}
}

func resultToClickBucket(ms *int64) string {
	if ms == nil {
		return "No Click"
	}
	switch {
	case *ms < 2000:
		return "< 2s (quick)"
	case *ms < 5000:
		return "2-5s"
	case *ms < 10000:
		return "5-10s"
	case *ms < 30000:
		return "10-30s"
	case *ms < 60000:
		return "30-60s"
	default:
		return "> 60s (browsing)"
	}
}

func durationBucket(ms int64) string {
	switch {
	case ms < 5000:
		return "< 5s (quick)"
	case ms < 30000:
		return "5-30s"
	case ms < 60000:
		return "30-60s"
	case ms < 180000:
		return "1-3 min"
	case ms < 300000:
		return "3-5 min"
	default:
		return "> 5 min (extended)"
	}
}
