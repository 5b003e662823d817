package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

func TestTerms_AttributionViaCarriedTerm(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	// Results and clicks carry no query text; they must land on the term
	// carried forward from the initiation.
	events := enrich(t, []*domain.RawEvent{
		rawAt(day, domain.EventSearchTriggered, "u1", "s1", "Budget", "", 0),
		rawAt(day.Add(time.Second), domain.EventResultCount, "u1", "s1", "", "0", 1),
		rawAt(day.Add(2*time.Second), domain.EventSearchTriggered, "u1", "s1", "budget report", "", 2),
		rawAt(day.Add(3*time.Second), domain.EventResultCount, "u1", "s1", "", "25", 3),
		rawAt(day.Add(4*time.Second), domain.EventResultClick, "u1", "s1", "", "", 4),
		rawAt(day.Add(5*time.Second), domain.EventTabClick, "u1", "s1", "", "", 5),
	})

	terms := Terms(events, map[string]string{
		"budget":        "2026-07-01",
		"budget report": "2026-08-01",
	})

	require.Len(t, terms, 2)

	budget := terms[0]
	assert.Equal(t, "budget", budget.Term)
	assert.Equal(t, 1, budget.SearchCount)
	assert.Equal(t, 1, budget.ResultCount)
	assert.Equal(t, 1, budget.ZeroResultCount)
	assert.Equal(t, 0, budget.DiscoveryClicks)
	assert.Equal(t, "2026-07-01", budget.FirstSeenDate)
	assert.False(t, budget.IsNewTerm)

	report := terms[1]
	assert.Equal(t, "budget report", report.Term)
	assert.Equal(t, 1, report.SearchCount)
	assert.Equal(t, 1, report.ResultCount)
	assert.Equal(t, 0, report.ZeroResultCount)
	assert.Equal(t, 1, report.DiscoveryClicks)
	assert.Equal(t, 1, report.OtherClicks)
	assert.Equal(t, int64(25), report.SumResultTotal)
	assert.Equal(t, 1, report.ResultSamples)
	assert.True(t, report.IsNewTerm)
}

func TestTerms_EventsBeforeAnySearchAreSkipped(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	events := enrich(t, []*domain.RawEvent{
		// A click before any search in the session has no term to attribute.
		rawAt(day, domain.EventTrendingClick, "u1", "s1", "", "", 0),
		rawAt(day.Add(time.Second), domain.EventSearchTriggered, "u1", "s1", "policy", "", 1),
	})

	terms := Terms(events, nil)

	require.Len(t, terms, 1)
	assert.Equal(t, "policy", terms[0].Term)
	assert.Equal(t, 1, terms[0].SearchCount)
	assert.Equal(t, 0, terms[0].OtherClicks)
}

func TestTerms_UniqueSessionsAcrossUsers(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	events := enrich(t, []*domain.RawEvent{
		rawAt(day, domain.EventSearchTriggered, "u1", "s1", "budget", "", 0),
		rawAt(day.Add(time.Second), domain.EventSearchTriggered, "u2", "s2", "budget", "", 1),
		rawAt(day.Add(2*time.Second), domain.EventSearchTriggered, "u1", "s1", "budget", "", 2),
	})

	terms := Terms(events, nil)

	require.Len(t, terms, 1)
	assert.Equal(t, 3, terms[0].SearchCount)
	assert.Equal(t, 2, terms[0].UniqueSessions)
}

func TestTerms_SortedByDateThenTerm(t *testing.T) {
	day1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	events := enrich(t, []*domain.RawEvent{
		rawAt(day2, domain.EventSearchTriggered, "u1", "s3", "zeta", "", 0),
		rawAt(day1, domain.EventSearchTriggered, "u1", "s1", "beta", "", 1),
		rawAt(day1.Add(time.Minute), domain.EventSearchTriggered, "u1", "s2", "alpha", "", 2),
	})

	terms := Terms(events, nil)

	require.Len(t, terms, 3)
	assert.Equal(t, "alpha", terms[0].Term)
	assert.Equal(t, "2026-08-01", terms[0].SessionDate)
	assert.Equal(t, "beta", terms[1].Term)
	assert.Equal(t, "zeta", terms[2].Term)
	assert.Equal(t, "2026-08-02", terms[2].SessionDate)
}
