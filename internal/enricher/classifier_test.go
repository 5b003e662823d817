package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

func TestClickCategoryFor(t *testing.T) {
	tests := []struct {
		eventType string
		want      domain.ClickCategory
	}{
		{domain.EventResultClick, domain.ClickResult},
		{domain.EventViewMoreClick, domain.ClickViewMore},
		{domain.EventTrendingClick, domain.ClickTrending},
		{domain.EventTabClick, domain.ClickTab},
		{domain.EventAllTabPageClick, domain.ClickPaginationAll},
		{domain.EventNewsTabPageClick, domain.ClickPaginationNews},
		{domain.EventGoToTabPageClick, domain.ClickPaginationGoTo},
		{domain.EventFilterClick, domain.ClickFilter},
		{domain.EventSearchTriggered, domain.ClickNone},
		{domain.EventResultCount, domain.ClickNone},
		{"SOMETHING_ELSE", domain.ClickNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClickCategoryFor(tt.eventType), tt.eventType)
	}
}

func TestIsContentDiscovery_OnlyResultClicks(t *testing.T) {
	for _, cat := range domain.ClickCategories {
		if cat == domain.ClickResult {
			assert.True(t, IsContentDiscovery(cat))
		} else {
			assert.False(t, IsContentDiscovery(cat), string(cat))
		}
	}
	assert.False(t, IsContentDiscovery(domain.ClickNone))
}

func TestClassify_ZeroResultTriState(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		raw       string
		wantCount *int
		wantZero  *bool
	}{
		{name: "positive count", eventType: domain.EventResultCount, raw: "12", wantCount: intPtr(12), wantZero: boolPtr(false)},
		{name: "zero count", eventType: domain.EventResultCount, raw: "0", wantCount: intPtr(0), wantZero: boolPtr(true)},
		{name: "unparseable count", eventType: domain.EventResultCount, raw: "n/a"},
		{name: "empty count", eventType: domain.EventResultCount, raw: ""},
		{name: "negative count", eventType: domain.EventResultCount, raw: "-1"},
		{name: "non-result event ignores the column", eventType: domain.EventResultClick, raw: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := &domain.EnrichedEvent{
				RawEvent: domain.RawEvent{EventType: tt.eventType, ResultCountRaw: tt.raw},
			}
			classify(row)

			if tt.wantCount == nil {
				assert.Nil(t, row.ResultCount)
				assert.Nil(t, row.IsZeroResult)
			} else {
				require.NotNil(t, row.ResultCount)
				assert.Equal(t, *tt.wantCount, *row.ResultCount)
				require.NotNil(t, row.IsZeroResult)
				assert.Equal(t, *tt.wantZero, *row.IsZeroResult)
			}
		})
	}
}

func TestClassify_ClickOutputs(t *testing.T) {
	row := &domain.EnrichedEvent{
		RawEvent: domain.RawEvent{EventType: domain.EventResultClick},
	}
	classify(row)

	assert.Equal(t, domain.ClickResult, row.ClickCategory)
	assert.True(t, row.IsContentDiscovery)
	assert.True(t, row.IsClick())

	row = &domain.EnrichedEvent{
		RawEvent: domain.RawEvent{EventType: domain.EventTabClick},
	}
	classify(row)

	assert.Equal(t, domain.ClickTab, row.ClickCategory)
	assert.False(t, row.IsContentDiscovery)
	assert.True(t, row.IsClick())
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
