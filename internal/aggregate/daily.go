package aggregate

import (
	"sort"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// Daily rolls enriched events up to one row per calendar date. All rate
// inputs stay as separate counts; consumers divide, we never do.
//
// userFirstDates maps a user id to the first date the user was ever seen
// on (persisted index merged with the current batch); it drives the
// new-versus-returning split.
func Daily(events []*domain.EnrichedEvent, userFirstDates map[string]string) []*domain.DailyAggregate {
	type dayState struct {
		agg      *domain.DailyAggregate
		sessions map[string]bool
		users    map[string]bool
		terms    map[string]bool
	}

	days := make(map[string]*dayState)

	state := func(date string) *dayState {
		s, ok := days[date]
		if !ok {
			s = &dayState{
				agg:      &domain.DailyAggregate{SessionDate: date},
				sessions: make(map[string]bool),
				users:    make(map[string]bool),
				terms:    make(map[string]bool),
			}
			days[date] = s
		}
		return s
	}

	for _, row := range events {
		s := state(row.SessionDate)
		agg := s.agg

		agg.TotalEvents++
		s.sessions[row.SessionKey] = true
		s.users[row.UserID] = true
		if row.SearchTerm != "" {
			s.terms[row.SearchTerm] = true
			agg.SumTermLength += row.TermLength
			agg.SumTermWords += row.TermWordCount
			agg.TermSamples++
		}

		if domain.IsSearchInitiation(row.EventType) {
			agg.SearchCount++
		}
		if row.EventType == domain.EventResultCount {
			agg.ResultCount++
		}
		if row.IsZeroResult != nil && *row.IsZeroResult {
			agg.ZeroResultCount++
		}
		if row.IsFirstSearchOfDay != nil && *row.IsFirstSearchOfDay {
			agg.FirstSearchesOfDay++
		}

		if row.IsClick() {
			agg.ClickCount++
			switch row.ClickCategory {
			case domain.ClickResult:
				agg.ResultClicks++
			case domain.ClickViewMore:
				agg.ViewMoreClicks++
			case domain.ClickTrending:
				agg.TrendingClicks++
			case domain.ClickTab:
				agg.TabClicks++
			case domain.ClickPaginationAll:
				agg.PaginationAllClicks++
			case domain.ClickPaginationNews:
				agg.PaginationNewsClicks++
			case domain.ClickPaginationGoTo:
				agg.PaginationGoToClicks++
			case domain.ClickFilter:
				agg.FilterClicks++
			}
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]*domain.DailyAggregate, 0, len(dates))
	for _, date := range dates {
		s := days[date]
		s.agg.UniqueSessions = len(s.sessions)
		s.agg.UniqueUsers = len(s.users)
		s.agg.UniqueTerms = len(s.terms)

		for user := range s.users {
			if first, ok := userFirstDates[user]; ok && first == date {
				s.agg.NewUsers++
			} else {
				s.agg.ReturningUsers++
			}
		}

		out = append(out, s.agg)
	}
	return out
}
