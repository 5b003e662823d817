package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// deleteRange drops a table's rows for the inclusive date range. Every
// Replace method runs it first; delete-then-reinsert is what makes
// reprocessing a range safe to retry.
func (r *Repository) deleteRange(ctx context.Context, table, fromDate, toDate string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE session_date >= ? AND session_date <= ?", table)
	if err := r.client.Conn().Exec(ctx, query, dateValue(fromDate), dateValue(toDate)); err != nil {
		return fmt.Errorf("failed to delete %s rows for [%s, %s]: %w", table, fromDate, toDate, err)
	}
	return nil
}

func (r *Repository) sendBatch(ctx context.Context, table string, appendRows func(driver.Batch) error) error {
	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("failed to prepare %s batch: %w", table, err)
	}
	if err := appendRows(batch); err != nil {
		return fmt.Errorf("failed to append to %s batch: %w", table, err)
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send %s batch: %w", table, err)
	}
	return nil
}

// ReplaceEnrichedEvents rewrites the event-grain table for the date range.
func (r *Repository) ReplaceEnrichedEvents(ctx context.Context, fromDate, toDate string, rows []*domain.EnrichedEvent) error {
	if err := r.deleteRange(ctx, "enriched_events", fromDate, toDate); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.sendBatch(ctx, "enriched_events", func(batch driver.Batch) error {
		for _, row := range rows {
			if err := batch.Append(
				dateValue(row.SessionDate),
				row.SessionKey,
				row.EventOrder,
				row.Timestamp,
				row.LocalTime,
				row.EventType,
				row.UserID,
				row.SessionID,
				row.PrevEventType,
				row.PrevTimestamp,
				row.MsSincePrev,
				row.GapBucket,
				row.SearchTerm,
				row.TermLength,
				row.TermWordCount,
				row.LastSearchAt,
				row.ActiveTerm,
				row.EventHour,
				row.EventWeekday,
				row.ResultCount,
				row.IsZeroResult,
				string(row.ClickCategory),
				row.IsContentDiscovery,
				row.IsFirstSearchOfDay,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceJourneys rewrites the session-grain table for the date range.
func (r *Repository) ReplaceJourneys(ctx context.Context, fromDate, toDate string, rows []*domain.Journey) error {
	if err := r.deleteRange(ctx, "journeys", fromDate, toDate); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.sendBatch(ctx, "journeys", func(batch driver.Batch) error {
		for _, j := range rows {
			if err := appendJourney(batch, j); err != nil {
				return err
			}
		}
		return nil
	})
}

func appendJourney(batch driver.Batch, j *domain.Journey) error {
	return batch.Append(
		dateValue(j.SessionDate),
		j.SessionKey,
		j.UserID,
		j.SessionID,
		j.Start,
		j.End,
		j.DurationMs,
		j.TotalEvents,
		j.SearchCount,
		j.ResultCount,
		j.ClickCount,
		j.ZeroResultCount,
		j.UniqueTerms,
		j.ResultClicks,
		j.ViewMoreClicks,
		j.TrendingClicks,
		j.TabClicks,
		j.PaginationAllClicks,
		j.PaginationNewsClicks,
		j.PaginationGoToClicks,
		j.FilterClicks,
		j.AvgResultTotal,
		j.MaxResultTotal,
		j.MsSearchToResult,
		j.MsResultToClick,
		j.AvgMsBetween,
		j.AvgTermLength,
		j.AvgTermWords,
		j.FirstEventHour,
		j.LastEventHour,
		j.IncludesFirstSearchOfDay,
		string(j.Outcome),
		j.HadReformulation,
		j.RecoveredFromZero,
		j.MultiTabBrowsing,
		j.IsFirstSession,
		j.Complexity,
		j.SearchToResultBucket,
		j.ResultToClickBucket,
		j.DurationBucket,
	)
}

// ReplaceDailyAggregates rewrites the date-grain table for the date range.
func (r *Repository) ReplaceDailyAggregates(ctx context.Context, fromDate, toDate string, rows []*domain.DailyAggregate) error {
	if err := r.deleteRange(ctx, "daily_aggregates", fromDate, toDate); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.sendBatch(ctx, "daily_aggregates", func(batch driver.Batch) error {
		for _, a := range rows {
			if err := batch.Append(
				dateValue(a.SessionDate),
				a.TotalEvents,
				a.UniqueSessions,
				a.UniqueUsers,
				a.UniqueTerms,
				a.SearchCount,
				a.ResultCount,
				a.ClickCount,
				a.ZeroResultCount,
				a.FirstSearchesOfDay,
				a.ResultClicks,
				a.ViewMoreClicks,
				a.TrendingClicks,
				a.TabClicks,
				a.PaginationAllClicks,
				a.PaginationNewsClicks,
				a.PaginationGoToClicks,
				a.FilterClicks,
				a.SumTermLength,
				a.SumTermWords,
				a.TermSamples,
				a.NewUsers,
				a.ReturningUsers,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceTermAggregates rewrites the (date, term)-grain table for the range.
func (r *Repository) ReplaceTermAggregates(ctx context.Context, fromDate, toDate string, rows []*domain.TermAggregate) error {
	if err := r.deleteRange(ctx, "term_aggregates", fromDate, toDate); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.sendBatch(ctx, "term_aggregates", func(batch driver.Batch) error {
		for _, a := range rows {
			if err := batch.Append(
				dateValue(a.SessionDate),
				a.Term,
				a.SearchCount,
				a.ResultCount,
				a.ZeroResultCount,
				a.DiscoveryClicks,
				a.OtherClicks,
				a.UniqueSessions,
				a.SumResultTotal,
				a.ResultSamples,
				a.FirstSeenDate,
				a.IsNewTerm,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
