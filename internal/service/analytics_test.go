package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
	"github.com/dallmi/SearchAnalytics/internal/dto"
)

// MockAggregateReader is a mock implementation of repository.AggregateReader
type MockAggregateReader struct {
	mock.Mock
}

func (m *MockAggregateReader) QueryJourneys(ctx context.Context, fromDate, toDate string) ([]*domain.Journey, error) {
	args := m.Called(fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Journey), args.Error(1)
}

func (m *MockAggregateReader) QueryDailyAggregates(ctx context.Context, fromDate, toDate string) ([]*domain.DailyAggregate, error) {
	args := m.Called(fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyAggregate), args.Error(1)
}

func (m *MockAggregateReader) QueryTermAggregates(ctx context.Context, fromDate, toDate, term string) ([]*domain.TermAggregate, error) {
	args := m.Called(fromDate, toDate, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TermAggregate), args.Error(1)
}

func (m *MockAggregateReader) QueryDailyJourneyAggregates(ctx context.Context, fromDate, toDate string) ([]*domain.DailyJourneyAggregate, error) {
	args := m.Called(fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyJourneyAggregate), args.Error(1)
}

func TestAnalyticsService_GetJourneys_Success(t *testing.T) {
	reader := new(MockAggregateReader)
	svc := NewAnalyticsService(reader, zap.NewNop())

	reader.On("QueryJourneys", "2026-08-01", "2026-08-07").Return([]*domain.Journey{
		{SessionKey: "2026-08-01|u1|s1", SessionDate: "2026-08-01", UserID: "u1", Outcome: domain.OutcomeSuccess},
		{SessionKey: "2026-08-02|u2|s2", SessionDate: "2026-08-02", UserID: "u2", Outcome: domain.OutcomeAbandoned},
	}, nil)

	resp, err := svc.GetJourneys(context.Background(), &dto.GetJourneysRequest{
		DateRangeRequest: dto.DateRangeRequest{From: "2026-08-01", To: "2026-08-07"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "2026-08-01|u1|s1", resp.Journeys[0].SessionKey)
	reader.AssertExpectations(t)
}

func TestAnalyticsService_GetJourneys_OutcomeFilter(t *testing.T) {
	reader := new(MockAggregateReader)
	svc := NewAnalyticsService(reader, zap.NewNop())

	reader.On("QueryJourneys", "2026-08-01", "2026-08-07").Return([]*domain.Journey{
		{SessionKey: "a", Outcome: domain.OutcomeSuccess},
		{SessionKey: "b", Outcome: domain.OutcomeAbandoned},
		{SessionKey: "c", Outcome: domain.OutcomeSuccess},
	}, nil)

	resp, err := svc.GetJourneys(context.Background(), &dto.GetJourneysRequest{
		DateRangeRequest: dto.DateRangeRequest{From: "2026-08-01", To: "2026-08-07"},
		Outcome:          "Success",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	for _, j := range resp.Journeys {
		assert.Equal(t, "Success", j.Outcome)
	}
}

func TestAnalyticsService_GetJourneys_InvalidOutcome(t *testing.T) {
	reader := new(MockAggregateReader)
	svc := NewAnalyticsService(reader, zap.NewNop())

	_, err := svc.GetJourneys(context.Background(), &dto.GetJourneysRequest{
		DateRangeRequest: dto.DateRangeRequest{From: "2026-08-01", To: "2026-08-07"},
		Outcome:          "Victory",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid outcome")
	reader.AssertNotCalled(t, "QueryJourneys")
}

func TestAnalyticsService_ValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{name: "valid range", from: "2026-08-01", to: "2026-08-07"},
		{name: "single day", from: "2026-08-01", to: "2026-08-01"},
		{name: "inverted range", from: "2026-08-07", to: "2026-08-01", wantErr: "from date must not be after"},
		{name: "bad from format", from: "01.08.2026", to: "2026-08-07", wantErr: "invalid from date"},
		{name: "bad to format", from: "2026-08-01", to: "tomorrow", wantErr: "invalid to date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRange(tt.from, tt.to)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestAnalyticsService_GetDailyAggregates_ReaderError(t *testing.T) {
	reader := new(MockAggregateReader)
	svc := NewAnalyticsService(reader, zap.NewNop())

	reader.On("QueryDailyAggregates", "2026-08-01", "2026-08-07").
		Return(nil, errors.New("connection refused"))

	_, err := svc.GetDailyAggregates(context.Background(), &dto.DateRangeRequest{
		From: "2026-08-01", To: "2026-08-07",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAnalyticsService_GetTermAggregates_PassesTermFilter(t *testing.T) {
	reader := new(MockAggregateReader)
	svc := NewAnalyticsService(reader, zap.NewNop())

	reader.On("QueryTermAggregates", "2026-08-01", "2026-08-07", "budget").Return([]*domain.TermAggregate{
		{SessionDate: "2026-08-01", Term: "budget", SearchCount: 4, IsNewTerm: true},
	}, nil)

	resp, err := svc.GetTermAggregates(context.Background(), &dto.GetTermAggregatesRequest{
		DateRangeRequest: dto.DateRangeRequest{From: "2026-08-01", To: "2026-08-07"},
		Term:             "budget",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Terms, 1)
	assert.Equal(t, "budget", resp.Terms[0].Term)
	assert.True(t, resp.Terms[0].IsNewTerm)
	reader.AssertExpectations(t)
}

func TestAnalyticsService_GetJourneyRollups_Success(t *testing.T) {
	reader := new(MockAggregateReader)
	svc := NewAnalyticsService(reader, zap.NewNop())

	reader.On("QueryDailyJourneyAggregates", "2026-05-01", "2026-05-31").Return([]*domain.DailyJourneyAggregate{
		{SessionDate: "2026-05-01", SessionCount: 10, SuccessCount: 6, SumDurationMs: 120000},
	}, nil)

	resp, err := svc.GetJourneyRollups(context.Background(), &dto.DateRangeRequest{
		From: "2026-05-01", To: "2026-05-31",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Days, 1)
	assert.Equal(t, 10, resp.Days[0].SessionCount)
	assert.Equal(t, int64(120000), resp.Days[0].SumDurationMs)
	reader.AssertExpectations(t)
}
