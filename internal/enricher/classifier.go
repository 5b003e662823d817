package enricher

import (
	"strconv"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// clickCategoryByType is the fixed mapping from event tag to click surface.
// Tags outside this map are not clicks.
var clickCategoryByType = map[string]domain.ClickCategory{
	domain.EventResultClick:      domain.ClickResult,
	domain.EventViewMoreClick:    domain.ClickViewMore,
	domain.EventTrendingClick:    domain.ClickTrending,
	domain.EventTabClick:         domain.ClickTab,
	domain.EventAllTabPageClick:  domain.ClickPaginationAll,
	domain.EventNewsTabPageClick: domain.ClickPaginationNews,
	domain.EventGoToTabPageClick: domain.ClickPaginationGoTo,
	domain.EventFilterClick:      domain.ClickFilter,
}

// ClickCategoryFor maps an event tag to its click category, or ClickNone.
func ClickCategoryFor(eventType string) domain.ClickCategory {
	return clickCategoryByType[eventType]
}

// IsContentDiscovery reports whether a click category counts as content
// discovery. Only a click on an actual search result does; tab, pagination,
// filter, trending and view-more clicks are navigation.
func IsContentDiscovery(cat domain.ClickCategory) bool {
	return cat == domain.ClickResult
}

// classify fills the per-row classifier outputs. The zero-result flag is a
// tri-state: only result-display events carry it, and an unparseable count
// leaves it nil rather than failing the row.
func classify(row *domain.EnrichedEvent) {
	if row.EventType == domain.EventResultCount {
		if count, err := strconv.Atoi(row.ResultCountRaw); err == nil && count >= 0 {
			zero := count == 0
			row.ResultCount = &count
			row.IsZeroResult = &zero
		}
	}

	row.ClickCategory = ClickCategoryFor(row.EventType)
	row.IsContentDiscovery = IsContentDiscovery(row.ClickCategory)
}
