package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
	"github.com/dallmi/SearchAnalytics/internal/dto"
	"github.com/dallmi/SearchAnalytics/internal/repository"
)

// AnalyticsService serves the computed tables to the read API.
type AnalyticsService struct {
	reader repository.AggregateReader
	log    *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(reader repository.AggregateReader, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		reader: reader,
		log:    log,
	}
}

// validateRange checks that both bounds parse as ISO dates and that the
// range is not inverted.
func validateRange(from, to string) error {
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return fmt.Errorf("invalid from date %q: expected YYYY-MM-DD", from)
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return fmt.Errorf("invalid to date %q: expected YYYY-MM-DD", to)
	}
	if from > to {
		return fmt.Errorf("from date must not be after to date")
	}
	return nil
}

// GetJourneys retrieves session journeys for a date range, optionally
// filtered to a single outcome.
func (s *AnalyticsService) GetJourneys(ctx context.Context, req *dto.GetJourneysRequest) (*dto.GetJourneysResponse, error) {
	if err := validateRange(req.From, req.To); err != nil {
		s.log.Warn("Invalid journey query",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err))
		return nil, err
	}
	if req.Outcome != "" && !validOutcome(req.Outcome) {
		return nil, fmt.Errorf("invalid outcome value: %s", req.Outcome)
	}

	journeys, err := s.reader.QueryJourneys(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}

	response := &dto.GetJourneysResponse{
		From:     req.From,
		To:       req.To,
		Journeys: make([]dto.JourneyData, 0, len(journeys)),
	}
	for _, j := range journeys {
		if req.Outcome != "" && string(j.Outcome) != req.Outcome {
			continue
		}
		response.Journeys = append(response.Journeys, journeyData(j))
	}
	response.Count = len(response.Journeys)

	return response, nil
}

// GetDailyAggregates retrieves date-grain aggregates for a date range.
func (s *AnalyticsService) GetDailyAggregates(ctx context.Context, req *dto.DateRangeRequest) (*dto.GetDailyAggregatesResponse, error) {
	if err := validateRange(req.From, req.To); err != nil {
		s.log.Warn("Invalid daily aggregate query",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err))
		return nil, err
	}

	days, err := s.reader.QueryDailyAggregates(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily aggregates: %w", err)
	}

	response := &dto.GetDailyAggregatesResponse{
		From: req.From,
		To:   req.To,
		Days: make([]dto.DailyAggregateData, 0, len(days)),
	}
	for _, d := range days {
		response.Days = append(response.Days, dailyAggregateData(d))
	}

	return response, nil
}

// GetTermAggregates retrieves (date, term)-grain aggregates for a date
// range, optionally restricted to one normalized term.
func (s *AnalyticsService) GetTermAggregates(ctx context.Context, req *dto.GetTermAggregatesRequest) (*dto.GetTermAggregatesResponse, error) {
	if err := validateRange(req.From, req.To); err != nil {
		s.log.Warn("Invalid term aggregate query",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err))
		return nil, err
	}

	terms, err := s.reader.QueryTermAggregates(ctx, req.From, req.To, req.Term)
	if err != nil {
		return nil, fmt.Errorf("failed to query term aggregates: %w", err)
	}

	response := &dto.GetTermAggregatesResponse{
		From:  req.From,
		To:    req.To,
		Term:  req.Term,
		Terms: make([]dto.TermAggregateData, 0, len(terms)),
	}
	for _, t := range terms {
		response.Terms = append(response.Terms, termAggregateData(t))
	}

	return response, nil
}

// GetJourneyRollups retrieves the permanent daily journey rollups for a
// date range. This is the only journey-shaped data available past the
// retention horizon.
func (s *AnalyticsService) GetJourneyRollups(ctx context.Context, req *dto.DateRangeRequest) (*dto.GetJourneyRollupsResponse, error) {
	if err := validateRange(req.From, req.To); err != nil {
		s.log.Warn("Invalid rollup query",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err))
		return nil, err
	}

	days, err := s.reader.QueryDailyJourneyAggregates(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query journey rollups: %w", err)
	}

	response := &dto.GetJourneyRollupsResponse{
		From: req.From,
		To:   req.To,
		Days: make([]dto.JourneyRollupData, 0, len(days)),
	}
	for _, d := range days {
		response.Days = append(response.Days, journeyRollupData(d))
	}

	return response, nil
}

func validOutcome(s string) bool {
	for _, o := range domain.Outcomes {
		if string(o) == s {
			return true
		}
	}
	return false
}

func journeyData(j *domain.Journey) dto.JourneyData {
	return dto.JourneyData{
		SessionKey:        j.SessionKey,
		SessionDate:       j.SessionDate,
		UserID:            j.UserID,
		Start:             j.Start,
		End:               j.End,
		DurationMs:        j.DurationMs,
		TotalEvents:       j.TotalEvents,
		SearchCount:       j.SearchCount,
		ResultCount:       j.ResultCount,
		ClickCount:        j.ClickCount,
		ZeroResultCount:   j.ZeroResultCount,
		UniqueTerms:       j.UniqueTerms,
		MsSearchToResult:  j.MsSearchToResult,
		MsResultToClick:   j.MsResultToClick,
		Outcome:           string(j.Outcome),
		HadReformulation:  j.HadReformulation,
		RecoveredFromZero: j.RecoveredFromZero,
		MultiTabBrowsing:  j.MultiTabBrowsing,
		IsFirstSession:    j.IsFirstSession,
		Complexity:        j.Complexity,
	}
}

func dailyAggregateData(d *domain.DailyAggregate) dto.DailyAggregateData {
	return dto.DailyAggregateData{
		SessionDate:          d.SessionDate,
		TotalEvents:          d.TotalEvents,
		UniqueSessions:       d.UniqueSessions,
		UniqueUsers:          d.UniqueUsers,
		UniqueTerms:          d.UniqueTerms,
		SearchCount:          d.SearchCount,
		ResultCount:          d.ResultCount,
		ClickCount:           d.ClickCount,
		ZeroResultCount:      d.ZeroResultCount,
		FirstSearchesOfDay:   d.FirstSearchesOfDay,
		ResultClicks:         d.ResultClicks,
		ViewMoreClicks:       d.ViewMoreClicks,
		TrendingClicks:       d.TrendingClicks,
		TabClicks:            d.TabClicks,
		PaginationAllClicks:  d.PaginationAllClicks,
		PaginationNewsClicks: d.PaginationNewsClicks,
		PaginationGoToClicks: d.PaginationGoToClicks,
		FilterClicks:         d.FilterClicks,
		SumTermLength:        d.SumTermLength,
		SumTermWords:         d.SumTermWords,
		TermSamples:          d.TermSamples,
		NewUsers:             d.NewUsers,
		ReturningUsers:       d.ReturningUsers,
	}
}

func termAggregateData(t *domain.TermAggregate) dto.TermAggregateData {
	return dto.TermAggregateData{
		SessionDate:     t.SessionDate,
		Term:            t.Term,
		SearchCount:     t.SearchCount,
		ResultCount:     t.ResultCount,
		ZeroResultCount: t.ZeroResultCount,
		DiscoveryClicks: t.DiscoveryClicks,
		OtherClicks:     t.OtherClicks,
		UniqueSessions:  t.UniqueSessions,
		SumResultTotal:  t.SumResultTotal,
		ResultSamples:   t.ResultSamples,
		FirstSeenDate:   t.FirstSeenDate,
		IsNewTerm:       t.IsNewTerm,
	}
}

func journeyRollupData(d *domain.DailyJourneyAggregate) dto.JourneyRollupData {
	return dto.JourneyRollupData{
		SessionDate:           d.SessionDate,
		SessionCount:          d.SessionCount,
		SuccessCount:          d.SuccessCount,
		EngagedCount:          d.EngagedCount,
		NoResultsCount:        d.NoResultsCount,
		AbandonedCount:        d.AbandonedCount,
		UnknownCount:          d.UnknownCount,
		ReformulationCount:    d.ReformulationCount,
		RecoveredCount:        d.RecoveredCount,
		MultiTabCount:         d.MultiTabCount,
		FirstSessionCount:     d.FirstSessionCount,
		TotalEvents:           d.TotalEvents,
		TotalSearches:         d.TotalSearches,
		TotalResults:          d.TotalResults,
		TotalClicks:           d.TotalClicks,
		TotalZeroResult:       d.TotalZeroResult,
		SumDurationMs:         d.SumDurationMs,
		SumMsSearchToResult:   d.SumMsSearchToResult,
		SearchToResultSamples: d.SearchToResultSamples,
		SumMsResultToClick:    d.SumMsResultToClick,
		ResultToClickSamples:  d.ResultToClickSamples,
	}
}
