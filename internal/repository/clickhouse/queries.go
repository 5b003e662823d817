package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

const journeyColumns = `
	session_date, session_key, user_id, session_id,
	session_start, session_end, duration_ms,
	total_events, search_count, result_count, click_count,
	zero_result_count, unique_terms,
	result_clicks, view_more_clicks, trending_clicks, tab_clicks,
	pagination_all_clicks, pagination_news_clicks, pagination_goto_clicks, filter_clicks,
	avg_result_total, max_result_total,
	ms_search_to_result, ms_result_to_click, avg_ms_between_events,
	avg_term_length, avg_term_words,
	first_event_hour, last_event_hour, includes_first_search_of_day,
	outcome, had_reformulation, recovered_from_zero, multi_tab_browsing, is_first_session,
	complexity, search_to_result_bucket, result_to_click_bucket, duration_bucket`

func scanJourneys(rows driver.Rows) ([]*domain.Journey, error) {
	var journeys []*domain.Journey
	for rows.Next() {
		var (
			j           domain.Journey
			sessionDate time.Time
			outcome     string
		)
		if err := rows.Scan(
			&sessionDate, &j.SessionKey, &j.UserID, &j.SessionID,
			&j.Start, &j.End, &j.DurationMs,
			&j.TotalEvents, &j.SearchCount, &j.ResultCount, &j.ClickCount,
			&j.ZeroResultCount, &j.UniqueTerms,
			&j.ResultClicks, &j.ViewMoreClicks, &j.TrendingClicks, &j.TabClicks,
			&j.PaginationAllClicks, &j.PaginationNewsClicks, &j.PaginationGoToClicks, &j.FilterClicks,
			&j.AvgResultTotal, &j.MaxResultTotal,
			&j.MsSearchToResult, &j.MsResultToClick, &j.AvgMsBetween,
			&j.AvgTermLength, &j.AvgTermWords,
			&j.FirstEventHour, &j.LastEventHour, &j.IncludesFirstSearchOfDay,
			&outcome, &j.HadReformulation, &j.RecoveredFromZero, &j.MultiTabBrowsing, &j.IsFirstSession,
			&j.Complexity, &j.SearchToResultBucket, &j.ResultToClickBucket, &j.DurationBucket,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journey: %w", err)
		}
		j.SessionDate = sessionDate.Format("2006-01-02")
		j.Outcome = domain.Outcome(outcome)
		journeys = append(journeys, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journeys: %w", err)
	}
	return journeys, nil
}

// JourneyDates returns every distinct date with journey rows, sorted.
func (r *Repository) JourneyDates(ctx context.Context) ([]string, error) {
	return r.distinctDates(ctx, "journeys")
}

// RolledUpDates returns the set of dates present in the permanent rollup.
func (r *Repository) RolledUpDates(ctx context.Context) (map[string]bool, error) {
	dates, err := r.distinctDates(ctx, "daily_journey_aggregates")
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set, nil
}

func (r *Repository) distinctDates(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT session_date FROM %s ORDER BY session_date", table)
	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s dates: %w", table, err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan %s date: %w", table, err)
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s dates: %w", table, err)
	}
	return dates, nil
}

// FetchJourneysByDate returns all journeys for one date.
func (r *Repository) FetchJourneysByDate(ctx context.Context, date string) ([]*domain.Journey, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM journeys WHERE session_date = ? ORDER BY session_start, session_key",
		journeyColumns)
	rows, err := r.client.Conn().Query(ctx, query, dateValue(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys for %s: %w", date, err)
	}
	defer rows.Close()
	return scanJourneys(rows)
}

// DeleteJourneysByDate removes one date's journey rows. The rollup calls
// this only after verifying the date's aggregate exists.
func (r *Repository) DeleteJourneysByDate(ctx context.Context, date string) error {
	if err := r.client.Conn().Exec(ctx,
		"DELETE FROM journeys WHERE session_date = ?", dateValue(date)); err != nil {
		return fmt.Errorf("failed to delete journeys for %s: %w", date, err)
	}
	return nil
}

// UpsertDailyJourneyAggregate overwrites the permanent rollup row for the
// aggregate's date.
func (r *Repository) UpsertDailyJourneyAggregate(ctx context.Context, agg *domain.DailyJourneyAggregate) error {
	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO daily_journey_aggregates")
	if err != nil {
		return fmt.Errorf("failed to prepare rollup batch: %w", err)
	}
	if err := batch.Append(
		dateValue(agg.SessionDate),
		agg.SessionCount,
		agg.SuccessCount,
		agg.EngagedCount,
		agg.NoResultsCount,
		agg.AbandonedCount,
		agg.UnknownCount,
		agg.ReformulationCount,
		agg.RecoveredCount,
		agg.MultiTabCount,
		agg.FirstSessionCount,
		agg.TotalEvents,
		agg.TotalSearches,
		agg.TotalResults,
		agg.TotalClicks,
		agg.TotalZeroResult,
		agg.SumDurationMs,
		agg.SumMsSearchToResult,
		agg.SearchToResultSamples,
		agg.SumMsResultToClick,
		agg.ResultToClickSamples,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to append rollup row: %w", err)
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send rollup batch: %w", err)
	}
	return nil
}

// QueryJourneys returns journeys in the inclusive date range.
func (r *Repository) QueryJourneys(ctx context.Context, fromDate, toDate string) ([]*domain.Journey, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM journeys WHERE session_date >= ? AND session_date <= ? ORDER BY session_date, session_start, session_key",
		journeyColumns)
	rows, err := r.client.Conn().Query(ctx, query, dateValue(fromDate), dateValue(toDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()
	return scanJourneys(rows)
}

// QueryDailyAggregates returns daily aggregates in the inclusive range.
func (r *Repository) QueryDailyAggregates(ctx context.Context, fromDate, toDate string) ([]*domain.DailyAggregate, error) {
	query := `
	SELECT
		session_date, total_events, unique_sessions, unique_users, unique_terms,
		search_count, result_count, click_count, zero_result_count, first_searches_of_day,
		result_clicks, view_more_clicks, trending_clicks, tab_clicks,
		pagination_all_clicks, pagination_news_clicks, pagination_goto_clicks, filter_clicks,
		sum_term_length, sum_term_words, term_samples,
		new_users, returning_users
	FROM daily_aggregates
	WHERE session_date >= ? AND session_date <= ?
	ORDER BY session_date
	`
	rows, err := r.client.Conn().Query(ctx, query, dateValue(fromDate), dateValue(toDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []*domain.DailyAggregate
	for rows.Next() {
		var (
			a           domain.DailyAggregate
			sessionDate time.Time
		)
		if err := rows.Scan(
			&sessionDate, &a.TotalEvents, &a.UniqueSessions, &a.UniqueUsers, &a.UniqueTerms,
			&a.SearchCount, &a.ResultCount, &a.ClickCount, &a.ZeroResultCount, &a.FirstSearchesOfDay,
			&a.ResultClicks, &a.ViewMoreClicks, &a.TrendingClicks, &a.TabClicks,
			&a.PaginationAllClicks, &a.PaginationNewsClicks, &a.PaginationGoToClicks, &a.FilterClicks,
			&a.SumTermLength, &a.SumTermWords, &a.TermSamples,
			&a.NewUsers, &a.ReturningUsers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily aggregate: %w", err)
		}
		a.SessionDate = sessionDate.Format("2006-01-02")
		aggs = append(aggs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily aggregates: %w", err)
	}
	return aggs, nil
}

// QueryTermAggregates returns term aggregates in the inclusive range,
// optionally restricted to one term.
func (r *Repository) QueryTermAggregates(ctx context.Context, fromDate, toDate, term string) ([]*domain.TermAggregate, error) {
	query := `
	SELECT
		session_date, term, search_count, result_count, zero_result_count,
		discovery_clicks, other_clicks, unique_sessions,
		sum_result_total, result_samples, first_seen_date, is_new_term
	FROM term_aggregates
	WHERE session_date >= ? AND session_date <= ?`
	args := []interface{}{dateValue(fromDate), dateValue(toDate)}
	if term != "" {
		query += " AND term = ?"
		args = append(args, term)
	}
	query += " ORDER BY session_date, term"

	rows, err := r.client.Conn().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query term aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []*domain.TermAggregate
	for rows.Next() {
		var (
			a           domain.TermAggregate
			sessionDate time.Time
		)
		if err := rows.Scan(
			&sessionDate, &a.Term, &a.SearchCount, &a.ResultCount, &a.ZeroResultCount,
			&a.DiscoveryClicks, &a.OtherClicks, &a.UniqueSessions,
			&a.SumResultTotal, &a.ResultSamples, &a.FirstSeenDate, &a.IsNewTerm,
		); err != nil {
			return nil, fmt.Errorf("failed to scan term aggregate: %w", err)
		}
		a.SessionDate = sessionDate.Format("2006-01-02")
		aggs = append(aggs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating term aggregates: %w", err)
	}
	return aggs, nil
}

// QueryDailyJourneyAggregates returns permanent rollup rows in the range.
func (r *Repository) QueryDailyJourneyAggregates(ctx context.Context, fromDate, toDate string) ([]*domain.DailyJourneyAggregate, error) {
	query := `
	SELECT
		session_date, session_count,
		success_count, engaged_count, no_results_count, abandoned_count, unknown_count,
		reformulation_count, recovered_count, multi_tab_count, first_session_count,
		total_events, total_searches, total_results, total_clicks, total_zero_result,
		sum_duration_ms,
		sum_ms_search_to_result, search_to_result_samples,
		sum_ms_result_to_click, result_to_click_samples
	FROM daily_journey_aggregates FINAL
	WHERE session_date >= ? AND session_date <= ?
	ORDER BY session_date
	`
	rows, err := r.client.Conn().Query(ctx, query, dateValue(fromDate), dateValue(toDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query journey rollups: %w", err)
	}
	defer rows.Close()

	var aggs []*domain.DailyJourneyAggregate
	for rows.Next() {
		var (
			a           domain.DailyJourneyAggregate
			sessionDate time.Time
		)
		if err := rows.Scan(
			&sessionDate, &a.SessionCount,
			&a.SuccessCount, &a.EngagedCount, &a.NoResultsCount, &a.AbandonedCount, &a.UnknownCount,
			&a.ReformulationCount, &a.RecoveredCount, &a.MultiTabCount, &a.FirstSessionCount,
			&a.TotalEvents, &a.TotalSearches, &a.TotalResults, &a.TotalClicks, &a.TotalZeroResult,
			&a.SumDurationMs,
			&a.SumMsSearchToResult, &a.SearchToResultSamples,
			&a.SumMsResultToClick, &a.ResultToClickSamples,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journey rollup: %w", err)
		}
		a.SessionDate = sessionDate.Format("2006-01-02")
		aggs = append(aggs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journey rollups: %w", err)
	}
	return aggs, nil
}
