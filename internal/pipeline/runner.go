package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/aggregate"
	"github.com/dallmi/SearchAnalytics/internal/domain"
	"github.com/dallmi/SearchAnalytics/internal/enricher"
	"github.com/dallmi/SearchAnalytics/internal/journey"
	"github.com/dallmi/SearchAnalytics/internal/normalizer"
	"github.com/dallmi/SearchAnalytics/internal/repository"
)

// Runner drives one batch run of the pipeline. Stages execute strictly in
// order — normalize, enrich, classify, aggregate — each a pure function of
// its input plus the persisted first-seen indexes. Reprocessing a date
// range is the recovery mechanism for partial failures: every derived
// table is replaced for the range, never appended to.
type Runner struct {
	repo       repository.Repository
	normalizer *normalizer.Normalizer
	enricher   *enricher.Enricher
	journeys   *journey.Aggregator
	loc        *time.Location
	batchSize  int
	log        *zap.Logger
}

const defaultIngestBatchSize = 5000

func NewRunner(repo repository.Repository, loc *time.Location, log *zap.Logger) *Runner {
	return &Runner{
		repo:       repo,
		normalizer: normalizer.New(log),
		enricher:   enricher.New(loc, log),
		journeys:   journey.NewAggregator(),
		loc:        loc,
		batchSize:  defaultIngestBatchSize,
		log:        log,
	}
}

// WithBatchSize sets the insert chunk size for Ingest. Values below one are
// ignored.
func (r *Runner) WithBatchSize(n int) *Runner {
	if n > 0 {
		r.batchSize = n
	}
	return r
}

// Ingest loads an exporter batch file into the raw event table and then
// recomputes the derived tables for every date the batch touches.
func (r *Runner) Ingest(ctx context.Context, path string) error {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.String("input", path))

	rows, err := normalizer.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input batch: %w", err)
	}

	events := r.normalizer.Normalize(rows)
	if len(events) == 0 {
		log.Warn("Input batch produced no usable events")
		return nil
	}

	inserted := 0
	for start := 0; start < len(events); start += r.batchSize {
		end := start + r.batchSize
		if end > len(events) {
			end = len(events)
		}
		n, err := r.repo.InsertRawEvents(ctx, events[start:end])
		if err != nil {
			return fmt.Errorf("failed to store raw events: %w", err)
		}
		inserted += n
	}
	log.Info("Stored raw events",
		zap.Int("rows_read", len(rows)),
		zap.Int("events", inserted))

	fromDate, toDate := r.dateRange(events)
	return r.recompute(ctx, log, fromDate, toDate)
}

// Recompute is the incremental run mode: delete and rebuild every derived
// row for the inclusive whole-date range.
func (r *Runner) Recompute(ctx context.Context, fromDate, toDate string) error {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID))

	if fromDate > toDate {
		return fmt.Errorf("invalid date range: %s > %s", fromDate, toDate)
	}
	return r.recompute(ctx, log, fromDate, toDate)
}

// Rebuild recomputes every derived table from all raw history.
func (r *Runner) Rebuild(ctx context.Context) error {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.Bool("rebuild", true))

	dates, err := r.repo.ListRawEventDates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list raw event dates: %w", err)
	}
	if len(dates) == 0 {
		log.Warn("No raw events stored, nothing to rebuild")
		return nil
	}

	return r.recompute(ctx, log, dates[0], dates[len(dates)-1])
}

func (r *Runner) recompute(ctx context.Context, log *zap.Logger, fromDate, toDate string) error {
	start := time.Now()
	log = log.With(zap.String("from", fromDate), zap.String("to", toDate))
	log.Info("Recomputing derived tables")

	raw, err := r.repo.FetchRawEvents(ctx, fromDate, toDate)
	if err != nil {
		return fmt.Errorf("failed to fetch raw events: %w", err)
	}

	enriched := r.enricher.Enrich(raw)

	firstStarts, userFirstDates, err := r.mergeUserFirstSeen(ctx, enriched)
	if err != nil {
		return err
	}
	termFirstDates, err := r.mergeTermFirstSeen(ctx, enriched)
	if err != nil {
		return err
	}

	journeys := r.journeys.BuildAll(enriched, firstStarts)
	daily := aggregate.Daily(enriched, userFirstDates)
	terms := aggregate.Terms(enriched, termFirstDates)

	if err := r.repo.ReplaceEnrichedEvents(ctx, fromDate, toDate, enriched); err != nil {
		return fmt.Errorf("failed to replace enriched events: %w", err)
	}
	if err := r.repo.ReplaceJourneys(ctx, fromDate, toDate, journeys); err != nil {
		return fmt.Errorf("failed to replace journeys: %w", err)
	}
	if err := r.repo.ReplaceDailyAggregates(ctx, fromDate, toDate, daily); err != nil {
		return fmt.Errorf("failed to replace daily aggregates: %w", err)
	}
	if err := r.repo.ReplaceTermAggregates(ctx, fromDate, toDate, terms); err != nil {
		return fmt.Errorf("failed to replace term aggregates: %w", err)
	}

	log.Info("Recompute complete",
		zap.Int("events", len(enriched)),
		zap.Int("journeys", len(journeys)),
		zap.Int("daily_rows", len(daily)),
		zap.Int("term_rows", len(terms)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// mergeUserFirstSeen reconciles the batch's earliest session start per user
// against the persisted first-seen index. The merged view — not the batch
// alone — decides first-session flags and the new-vs-returning split, so
// incremental runs agree with a full rebuild.
func (r *Runner) mergeUserFirstSeen(ctx context.Context, events []*domain.EnrichedEvent) (map[string]time.Time, map[string]string, error) {
	type batchFirst struct {
		start time.Time
		date  string
	}
	batch := make(map[string]batchFirst)
	for _, row := range events {
		cur, ok := batch[row.UserID]
		if !ok || row.Timestamp.Before(cur.start) {
			batch[row.UserID] = batchFirst{start: row.Timestamp, date: row.SessionDate}
		}
	}

	userIDs := make([]string, 0, len(batch))
	for user := range batch {
		userIDs = append(userIDs, user)
	}
	sort.Strings(userIDs)

	persisted, err := r.repo.UserFirstSeen(ctx, userIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user first-seen index: %w", err)
	}

	firstStarts := make(map[string]time.Time, len(batch))
	firstDates := make(map[string]string, len(batch))
	var updates []domain.UserFirstSeen

	for _, user := range userIDs {
		b := batch[user]
		p, known := persisted[user]
		if !known || b.start.Before(p.FirstStart) {
			firstStarts[user] = b.start
			firstDates[user] = b.date
			updates = append(updates, domain.UserFirstSeen{
				UserID:     user,
				FirstDate:  b.date,
				FirstStart: b.start,
			})
			continue
		}
		firstStarts[user] = p.FirstStart
		firstDates[user] = p.FirstDate
	}

	if len(updates) > 0 {
		if err := r.repo.UpsertUserFirstSeen(ctx, updates); err != nil {
			return nil, nil, fmt.Errorf("failed to update user first-seen index: %w", err)
		}
	}
	return firstStarts, firstDates, nil
}

// mergeTermFirstSeen does the same reconciliation for normalized search
// terms, keyed on the date a term was first searched.
func (r *Runner) mergeTermFirstSeen(ctx context.Context, events []*domain.EnrichedEvent) (map[string]string, error) {
	batch := make(map[string]string)
	for _, row := range events {
		if row.SearchTerm == "" {
			continue
		}
		if cur, ok := batch[row.SearchTerm]; !ok || row.SessionDate < cur {
			batch[row.SearchTerm] = row.SessionDate
		}
	}

	terms := make([]string, 0, len(batch))
	for term := range batch {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	persisted, err := r.repo.TermFirstSeen(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to load term first-seen index: %w", err)
	}

	firstDates := make(map[string]string, len(batch))
	var updates []domain.TermFirstSeen

	for _, term := range terms {
		batchDate := batch[term]
		persistedDate, known := persisted[term]
		if !known || batchDate < persistedDate {
			firstDates[term] = batchDate
			updates = append(updates, domain.TermFirstSeen{Term: term, FirstDate: batchDate})
			continue
		}
		firstDates[term] = persistedDate
	}

	if len(updates) > 0 {
		if err := r.repo.UpsertTermFirstSeen(ctx, updates); err != nil {
			return nil, fmt.Errorf("failed to update term first-seen index: %w", err)
		}
	}
	return firstDates, nil
}

func (r *Runner) dateRange(events []*domain.RawEvent) (string, string) {
	fromDate := domain.DateOf(events[0].Timestamp, r.loc)
	toDate := fromDate
	for _, e := range events[1:] {
		date := domain.DateOf(e.Timestamp, r.loc)
		if date < fromDate {
			fromDate = date
		}
		if date > toDate {
			toDate = date
		}
	}
	return fromDate, toDate
}
