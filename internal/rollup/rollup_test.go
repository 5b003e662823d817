package rollup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// MockRollupStore is a mock implementation of repository.RollupStore
type MockRollupStore struct {
	mock.Mock
}

func (m *MockRollupStore) JourneyDates(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRollupStore) FetchJourneysByDate(ctx context.Context, date string) ([]*domain.Journey, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Journey), args.Error(1)
}

func (m *MockRollupStore) UpsertDailyJourneyAggregate(ctx context.Context, agg *domain.DailyJourneyAggregate) error {
	args := m.Called(agg)
	return args.Error(0)
}

func (m *MockRollupStore) RolledUpDates(ctx context.Context) (map[string]bool, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockRollupStore) DeleteJourneysByDate(ctx context.Context, date string) error {
	args := m.Called(date)
	return args.Error(0)
}

func ms(v int64) *int64 { return &v }

func sampleJourneys() []*domain.Journey {
	return []*domain.Journey{
		{
			Outcome:          domain.OutcomeSuccess,
			HadReformulation: true,
			IsFirstSession:   true,
			TotalEvents:      6,
			SearchCount:      2,
			ResultCount:      2,
			ClickCount:       1,
			DurationMs:       9000,
			MsSearchToResult: ms(300),
			MsResultToClick:  ms(2500),
		},
		{
			Outcome:           domain.OutcomeNoResults,
			RecoveredFromZero: false,
			TotalEvents:       2,
			SearchCount:       1,
			ResultCount:       1,
			ZeroResultCount:   1,
			DurationMs:        1000,
			MsSearchToResult:  ms(700),
		},
		{
			Outcome:          domain.OutcomeAbandoned,
			MultiTabBrowsing: true,
			TotalEvents:      3,
			SearchCount:      1,
			ResultCount:      1,
			DurationMs:       4000,
		},
	}
}

func TestCondense(t *testing.T) {
	agg := Condense("2026-05-01", sampleJourneys())

	assert.Equal(t, "2026-05-01", agg.SessionDate)
	assert.Equal(t, 3, agg.SessionCount)
	assert.Equal(t, 1, agg.SuccessCount)
	assert.Equal(t, 1, agg.NoResultsCount)
	assert.Equal(t, 1, agg.AbandonedCount)
	assert.Equal(t, 0, agg.EngagedCount)
	assert.Equal(t, 0, agg.UnknownCount)

	assert.Equal(t, 1, agg.ReformulationCount)
	assert.Equal(t, 0, agg.RecoveredCount)
	assert.Equal(t, 1, agg.MultiTabCount)
	assert.Equal(t, 1, agg.FirstSessionCount)

	assert.Equal(t, 11, agg.TotalEvents)
	assert.Equal(t, 4, agg.TotalSearches)
	assert.Equal(t, 4, agg.TotalResults)
	assert.Equal(t, 1, agg.TotalClicks)
	assert.Equal(t, 1, agg.TotalZeroResult)
	assert.Equal(t, int64(14000), agg.SumDurationMs)

	// Latency sums only count sessions that produced the transition.
	assert.Equal(t, int64(1000), agg.SumMsSearchToResult)
	assert.Equal(t, 2, agg.SearchToResultSamples)
	assert.Equal(t, int64(2500), agg.SumMsResultToClick)
	assert.Equal(t, 1, agg.ResultToClickSamples)
}

func TestCondense_Deterministic(t *testing.T) {
	first := Condense("2026-05-01", sampleJourneys())
	second := Condense("2026-05-01", sampleJourneys())
	assert.Equal(t, first, second)
}

func TestRun_RollsUpAndPurgesOnlyExpiredDates(t *testing.T) {
	store := new(MockRollupStore)
	r := New(store, zap.NewNop())

	store.On("JourneyDates").Return([]string{"2026-04-29", "2026-04-30", "2026-05-01"}, nil)
	store.On("FetchJourneysByDate", "2026-04-29").Return(sampleJourneys(), nil)
	store.On("FetchJourneysByDate", "2026-04-30").Return(sampleJourneys(), nil)
	store.On("UpsertDailyJourneyAggregate", mock.AnythingOfType("*domain.DailyJourneyAggregate")).Return(nil)
	store.On("RolledUpDates").Return(map[string]bool{"2026-04-29": true, "2026-04-30": true}, nil)
	store.On("DeleteJourneysByDate", "2026-04-29").Return(nil)
	store.On("DeleteJourneysByDate", "2026-04-30").Return(nil)

	err := r.Run(context.Background(), "2026-05-01")

	require.NoError(t, err)
	store.AssertExpectations(t)
	// The date at the cutoff itself stays.
	store.AssertNotCalled(t, "FetchJourneysByDate", "2026-05-01")
	store.AssertNotCalled(t, "DeleteJourneysByDate", "2026-05-01")
}

func TestRun_NothingExpired(t *testing.T) {
	store := new(MockRollupStore)
	r := New(store, zap.NewNop())

	store.On("JourneyDates").Return([]string{"2026-05-01", "2026-05-02"}, nil)

	err := r.Run(context.Background(), "2026-05-01")

	require.NoError(t, err)
	store.AssertNotCalled(t, "FetchJourneysByDate", mock.Anything)
	store.AssertNotCalled(t, "DeleteJourneysByDate", mock.Anything)
}

func TestRun_UpsertFailureStopsBeforeAnyPurge(t *testing.T) {
	store := new(MockRollupStore)
	r := New(store, zap.NewNop())

	store.On("JourneyDates").Return([]string{"2026-04-29"}, nil)
	store.On("FetchJourneysByDate", "2026-04-29").Return(sampleJourneys(), nil)
	store.On("UpsertDailyJourneyAggregate", mock.Anything).Return(assert.AnError)

	err := r.Run(context.Background(), "2026-05-01")

	require.Error(t, err)
	store.AssertNotCalled(t, "DeleteJourneysByDate", mock.Anything)
}

func TestPurge_RefusesWhenAnyDateIsMissing(t *testing.T) {
	store := new(MockRollupStore)
	r := New(store, zap.NewNop())

	// 2026-04-29 is rolled up, 2026-04-30 is not. Nothing at all may be
	// deleted, including the date that IS rolled up.
	store.On("RolledUpDates").Return(map[string]bool{"2026-04-29": true}, nil)

	err := r.Purge(context.Background(), []string{"2026-04-29", "2026-04-30"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRolledUp)
	assert.Contains(t, err.Error(), "2026-04-30")
	store.AssertNotCalled(t, "DeleteJourneysByDate", mock.Anything)
}

func TestRun_IdempotentOverAlreadyRolledUpDates(t *testing.T) {
	store := new(MockRollupStore)
	r := New(store, zap.NewNop())

	// The date was rolled up by a previous run whose purge failed; running
	// again overwrites the aggregate and completes the purge.
	store.On("JourneyDates").Return([]string{"2026-04-29"}, nil)
	store.On("FetchJourneysByDate", "2026-04-29").Return(sampleJourneys(), nil)
	store.On("UpsertDailyJourneyAggregate", mock.Anything).Return(nil)
	store.On("RolledUpDates").Return(map[string]bool{"2026-04-29": true}, nil)
	store.On("DeleteJourneysByDate", "2026-04-29").Return(nil)

	err := r.Run(context.Background(), "2026-05-01")

	require.NoError(t, err)
	store.AssertExpectations(t)
}
