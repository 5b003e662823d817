package enricher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

var berlin = mustLoadLocation("Europe/Berlin")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func rawEvent(ts time.Time, eventType, user, session, query string, seq uint64) *domain.RawEvent {
	return &domain.RawEvent{
		Timestamp: ts,
		EventType: eventType,
		UserID:    user,
		SessionID: session,
		Query:     query,
		Seq:       seq,
	}
}

func TestEnrich_SessionKeyAndDate(t *testing.T) {
	e := New(berlin, zap.NewNop())

	// 23:30 UTC on July 31 is already August 1 in Berlin (UTC+2 in summer).
	ts := time.Date(2026, 7, 31, 23, 30, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(ts, domain.EventSearchTriggered, "u1", "s1", "budget", 0),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "2026-08-01", out[0].SessionDate)
	assert.Equal(t, "2026-08-01|u1|s1", out[0].SessionKey)
	assert.Equal(t, 1, out[0].EventHour)
}

func TestEnrich_OrderingAndTiming(t *testing.T) {
	e := New(berlin, zap.NewNop())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	// Deliberately shuffled arrival order.
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(base.Add(2*time.Second), domain.EventResultCount, "u1", "s1", "", 0),
		rawEvent(base, domain.EventSearchTriggered, "u1", "s1", "budget", 1),
		rawEvent(base.Add(5*time.Second), domain.EventResultClick, "u1", "s1", "", 2),
	})

	require.Len(t, out, 3)
	assert.Equal(t, domain.EventSearchTriggered, out[0].EventType)
	assert.Equal(t, 1, out[0].EventOrder)
	assert.Nil(t, out[0].PrevEventType)
	assert.Nil(t, out[0].MsSincePrev)
	assert.Equal(t, "First Event", out[0].GapBucket)

	assert.Equal(t, domain.EventResultCount, out[1].EventType)
	assert.Equal(t, 2, out[1].EventOrder)
	require.NotNil(t, out[1].PrevEventType)
	assert.Equal(t, domain.EventSearchTriggered, *out[1].PrevEventType)
	require.NotNil(t, out[1].MsSincePrev)
	assert.Equal(t, int64(2000), *out[1].MsSincePrev)
	assert.Equal(t, "2-5s", out[1].GapBucket)

	assert.Equal(t, 3, out[2].EventOrder)
	require.NotNil(t, out[2].MsSincePrev)
	assert.Equal(t, int64(3000), *out[2].MsSincePrev)
}

func TestEnrich_TimestampTieBrokenByIngestionOrder(t *testing.T) {
	e := New(berlin, zap.NewNop())

	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(ts, domain.EventSearchTriggered, "u1", "s1", "budget", 0),
		rawEvent(ts, domain.EventResultCount, "u1", "s1", "", 1),
	})

	require.Len(t, out, 2)
	assert.Equal(t, domain.EventSearchTriggered, out[0].EventType)
	assert.Equal(t, domain.EventResultCount, out[1].EventType)
	require.NotNil(t, out[1].MsSincePrev)
	assert.Equal(t, int64(0), *out[1].MsSincePrev)
	assert.Equal(t, "< 0.5s", out[1].GapBucket)
}

func TestEnrich_CarriedForwardState(t *testing.T) {
	e := New(berlin, zap.NewNop())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(base, domain.EventSearchTriggered, "u1", "s1", "Budget", 0),
		rawEvent(base.Add(1*time.Second), domain.EventResultCount, "u1", "s1", "", 1),
		rawEvent(base.Add(10*time.Second), domain.EventSearchTriggered, "u1", "s1", "budget report", 2),
		rawEvent(base.Add(11*time.Second), domain.EventResultClick, "u1", "s1", "", 3),
	})

	require.Len(t, out, 4)

	// The initiation row itself carries its own term and timestamp.
	assert.Equal(t, "budget", out[0].ActiveTerm)
	require.NotNil(t, out[0].LastSearchAt)
	assert.True(t, out[0].LastSearchAt.Equal(base))

	// The result display inherits the first search.
	assert.Equal(t, "budget", out[1].ActiveTerm)
	require.NotNil(t, out[1].LastSearchAt)
	assert.True(t, out[1].LastSearchAt.Equal(base))

	// The reformulation replaces both carried values.
	assert.Equal(t, "budget report", out[2].ActiveTerm)
	assert.Equal(t, "budget report", out[3].ActiveTerm)
	require.NotNil(t, out[3].LastSearchAt)
	assert.True(t, out[3].LastSearchAt.Equal(base.Add(10*time.Second)))
}

func TestEnrich_NoInitiationKeepsNilCarriedState(t *testing.T) {
	e := New(berlin, zap.NewNop())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(base, domain.EventResultCount, "u1", "s1", "", 0),
		rawEvent(base.Add(time.Second), domain.EventResultClick, "u1", "s1", "", 1),
	})

	require.Len(t, out, 2)
	for _, row := range out {
		assert.Nil(t, row.LastSearchAt)
		assert.Equal(t, "", row.ActiveTerm)
	}
}

func TestEnrich_SessionsDoNotLeakState(t *testing.T) {
	e := New(berlin, zap.NewNop())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(base, domain.EventSearchTriggered, "u1", "s1", "budget", 0),
		rawEvent(base.Add(time.Minute), domain.EventResultClick, "u1", "s2", "", 1),
	})

	require.Len(t, out, 2)
	byKey := map[string]*domain.EnrichedEvent{}
	for _, row := range out {
		byKey[row.SessionKey] = row
	}

	other := byKey["2026-08-01|u1|s2"]
	require.NotNil(t, other)
	assert.Equal(t, "", other.ActiveTerm)
	assert.Nil(t, other.LastSearchAt)
	assert.Equal(t, 1, other.EventOrder)
}

func TestEnrich_TermMetrics(t *testing.T) {
	e := New(berlin, zap.NewNop())

	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(ts, domain.EventSearchTriggered, "u1", "s1", "  Straße Plan ", 0),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "straße plan", out[0].SearchTerm)
	// Rune count, not byte count.
	assert.Equal(t, 11, out[0].TermLength)
	assert.Equal(t, 2, out[0].TermWordCount)
}

func TestEnrich_FirstSearchOfDayAcrossSessions(t *testing.T) {
	e := New(berlin, zap.NewNop())

	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		// u1 searches in two different sessions on the same date.
		rawEvent(base, domain.EventSearchTriggered, "u1", "s1", "a", 0),
		rawEvent(base.Add(2*time.Hour), domain.EventSearchTriggered, "u1", "s2", "b", 1),
		// A non-initiation event never carries the flag.
		rawEvent(base.Add(time.Second), domain.EventResultCount, "u1", "s1", "", 2),
		// Another user's first search is independent.
		rawEvent(base.Add(3*time.Hour), domain.EventSearchStarted, "u2", "s3", "c", 3),
	})

	flags := map[string]*bool{}
	for _, row := range out {
		flags[row.SessionKey+"/"+row.EventType] = row.IsFirstSearchOfDay
	}

	require.NotNil(t, flags["2026-08-01|u1|s1/SEARCH_TRIGGERED"])
	assert.True(t, *flags["2026-08-01|u1|s1/SEARCH_TRIGGERED"])
	require.NotNil(t, flags["2026-08-01|u1|s2/SEARCH_TRIGGERED"])
	assert.False(t, *flags["2026-08-01|u1|s2/SEARCH_TRIGGERED"])
	assert.Nil(t, flags["2026-08-01|u1|s1/SEARCH_RESULT_COUNT"])
	require.NotNil(t, flags["2026-08-01|u2|s3/SEARCH_STARTED"])
	assert.True(t, *flags["2026-08-01|u2|s3/SEARCH_STARTED"])
}

func TestEnrich_ClockSkewNegativeGapKeptAsIs(t *testing.T) {
	e := New(berlin, zap.NewNop())

	// Same session, second event's clock is behind the first but sorts
	// after it by timestamp order anyway; with distinct timestamps the
	// ordering is purely chronological and gaps stay non-negative. What we
	// pin down here is that ordering is by timestamp, not arrival.
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	out := e.Enrich([]*domain.RawEvent{
		rawEvent(base.Add(time.Second), domain.EventResultCount, "u1", "s1", "", 0),
		rawEvent(base, domain.EventSearchTriggered, "u1", "s1", "q", 1),
	})

	require.Len(t, out, 2)
	assert.Equal(t, domain.EventSearchTriggered, out[0].EventType)
	require.NotNil(t, out[1].MsSincePrev)
	assert.Equal(t, int64(1000), *out[1].MsSincePrev)
}

func TestEnrich_DeterministicOutputOrder(t *testing.T) {
	e := New(berlin, zap.NewNop())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	input := []*domain.RawEvent{
		rawEvent(base.Add(time.Second), domain.EventResultCount, "u2", "s2", "", 0),
		rawEvent(base, domain.EventSearchTriggered, "u1", "s1", "q", 1),
		rawEvent(base.Add(2*time.Second), domain.EventResultClick, "u1", "s1", "", 2),
	}

	first := e.Enrich(input)
	second := e.Enrich(input)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].SessionKey, second[i].SessionKey)
		assert.Equal(t, first[i].EventOrder, second[i].EventOrder)
		assert.Equal(t, first[i].EventType, second[i].EventType)
	}
}

func TestIsoWeekday(t *testing.T) {
	// 2026-08-02 is a Sunday.
	sunday := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, isoWeekday(sunday))
	assert.Equal(t, 1, isoWeekday(monday))
}

func TestGapBucket(t *testing.T) {
	ms := func(v int64) *int64 { return &v }

	assert.Equal(t, "First Event", gapBucket(nil))
	assert.Equal(t, "< 0.5s", gapBucket(ms(499)))
	assert.Equal(t, "0.5-1s", gapBucket(ms(500)))
	assert.Equal(t, "1-2s", gapBucket(ms(1500)))
	assert.Equal(t, "2-5s", gapBucket(ms(4999)))
	assert.Equal(t, "5-10s", gapBucket(ms(5000)))
	assert.Equal(t, "10-30s", gapBucket(ms(29999)))
	assert.Equal(t, "30-60s", gapBucket(ms(30000)))
	assert.Equal(t, "> 60s", gapBucket(ms(60000)))
}
