package service

import (
	"context"

	"github.com/dallmi/SearchAnalytics/internal/dto"
)

// AnalyticsServicer defines the interface for analytics read operations
type AnalyticsServicer interface {
	GetJourneys(ctx context.Context, req *dto.GetJourneysRequest) (*dto.GetJourneysResponse, error)
	GetDailyAggregates(ctx context.Context, req *dto.DateRangeRequest) (*dto.GetDailyAggregatesResponse, error)
	GetTermAggregates(ctx context.Context, req *dto.GetTermAggregatesRequest) (*dto.GetTermAggregatesResponse, error)
	GetJourneyRollups(ctx context.Context, req *dto.DateRangeRequest) (*dto.GetJourneyRollupsResponse, error)
}
