package rollup

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
	"github.com/dallmi/SearchAnalytics/internal/repository"
)

// ErrNotRolledUp is returned when a purge is requested for a date that has
// no row in the permanent rollup table. This is a correctness guard, not a
// retryable condition: the run must stop rather than silently skip the
// purge.
var ErrNotRolledUp = errors.New("date has no daily journey aggregate, refusing to purge")

// Rollup condenses journeys older than the retention horizon into permanent
// daily aggregates and then purges the detail rows. The two phases are
// strictly ordered; a date is only ever deleted after its aggregate row
// exists.
type Rollup struct {
	store repository.RollupStore
	log   *zap.Logger
}

func New(store repository.RollupStore, log *zap.Logger) *Rollup {
	return &Rollup{store: store, log: log}
}

// Run rolls up and purges every journey date strictly before cutoffDate
// (ISO date). Re-running for already rolled-up dates overwrites their
// aggregates; the rollup is idempotent.
func (r *Rollup) Run(ctx context.Context, cutoffDate string) error {
	dates, err := r.store.JourneyDates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list journey dates: %w", err)
	}

	var expired []string
	for _, date := range dates {
		if date < cutoffDate {
			expired = append(expired, date)
		}
	}
	sort.Strings(expired)

	if len(expired) == 0 {
		r.log.Info("No journey dates past the retention horizon",
			zap.String("cutoff", cutoffDate))
		return nil
	}

	r.log.Info("Rolling up expired journey dates",
		zap.String("cutoff", cutoffDate),
		zap.Int("dates", len(expired)))

	// Phase 1: aggregate. Must fully succeed before any deletion.
	for _, date := range expired {
		journeys, err := r.store.FetchJourneysByDate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to fetch journeys for %s: %w", date, err)
		}
		agg := Condense(date, journeys)
		if err := r.store.UpsertDailyJourneyAggregate(ctx, agg); err != nil {
			return fmt.Errorf("failed to upsert rollup for %s: %w", date, err)
		}
		r.log.Info("Rolled up journey date",
			zap.String("date", date),
			zap.Int("sessions", agg.SessionCount))
	}

	// Phase 2: purge, re-verified against the rollup table.
	return r.Purge(ctx, expired)
}

// Purge deletes journey rows for the given dates. Every date is verified
// against the rollup table first; if any date is missing, nothing at all is
// deleted and the run aborts with ErrNotRolledUp.
func (r *Rollup) Purge(ctx context.Context, dates []string) error {
	rolled, err := r.store.RolledUpDates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rolled-up dates: %w", err)
	}

	for _, date := range dates {
		if !rolled[date] {
			return fmt.Errorf("%w: %s", ErrNotRolledUp, date)
		}
	}

	for _, date := range dates {
		if err := r.store.DeleteJourneysByDate(ctx, date); err != nil {
			return fmt.Errorf("failed to purge journeys for %s: %w", date, err)
		}
		r.log.Info("Purged journey date", zap.String("date", date))
	}

	return nil
}

// Condense aggregates one date's journeys into the permanent rollup row.
// It is a pure function; re-running it over the same journeys produces the
// same row.
func Condense(date string, journeys []*domain.Journey) *domain.DailyJourneyAggregate {
	agg := &domain.DailyJourneyAggregate{
		SessionDate:  date,
		SessionCount: len(journeys),
	}

	for _, j := range journeys {
		switch j.Outcome {
		case domain.OutcomeSuccess:
			agg.SuccessCount++
		case domain.OutcomeEngaged:
			agg.EngagedCount++
		case domain.OutcomeNoResults:
			agg.NoResultsCount++
		case domain.OutcomeAbandoned:
			agg.AbandonedCount++
		default:
			agg.UnknownCount++
		}

		if j.HadReformulation {
			agg.ReformulationCount++
		}
		if j.RecoveredFromZero {
			agg.RecoveredCount++
		}
		if j.MultiTabBrowsing {
			agg.MultiTabCount++
		}
		if j.IsFirstSession {
			agg.FirstSessionCount++
		}

		agg.TotalEvents += j.TotalEvents
		agg.TotalSearches += j.SearchCount
		agg.TotalResults += j.ResultCount
		agg.TotalClicks += j.ClickCount
		agg.TotalZeroResult += j.ZeroResultCount
		agg.SumDurationMs += j.DurationMs

		if j.MsSearchToResult != nil {
			agg.SumMsSearchToResult += *j.MsSearchToResult
			agg.SearchToResultSamples++
		}
		if j.MsResultToClick != nil {
			agg.SumMsResultToClick += *j.MsResultToClick
			agg.ResultToClickSamples++
		}
	}

	return agg
}
