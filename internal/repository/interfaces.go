package repository

import (
	"context"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// RawEventStore is the upsert-by-natural-key raw event table. Re-ingesting
// a row with a key already present replaces the stored copy.
type RawEventStore interface {
	// InsertRawEvents writes a batch of normalized events and returns how
	// many rows were written.
	InsertRawEvents(ctx context.Context, events []*domain.RawEvent) (int, error)

	// FetchRawEvents returns all events whose session date falls in the
	// inclusive [fromDate, toDate] range (ISO dates), ordered by
	// timestamp then ingestion sequence.
	FetchRawEvents(ctx context.Context, fromDate, toDate string) ([]*domain.RawEvent, error)

	// ListRawEventDates returns every distinct session date present in the
	// raw table, sorted ascending.
	ListRawEventDates(ctx context.Context) ([]string, error)
}

// DerivedStore writes the recomputable tables. Every Replace method is
// delete-then-reinsert for the given date range, which is what makes
// reprocessing a range idempotent.
type DerivedStore interface {
	ReplaceEnrichedEvents(ctx context.Context, fromDate, toDate string, rows []*domain.EnrichedEvent) error
	ReplaceJourneys(ctx context.Context, fromDate, toDate string, rows []*domain.Journey) error
	ReplaceDailyAggregates(ctx context.Context, fromDate, toDate string, rows []*domain.DailyAggregate) error
	ReplaceTermAggregates(ctx context.Context, fromDate, toDate string, rows []*domain.TermAggregate) error
}

// FirstSeenStore is the persisted min-date index for global first-seen
// values. Incremental runs merge against it instead of scanning history.
type FirstSeenStore interface {
	UserFirstSeen(ctx context.Context, userIDs []string) (map[string]domain.UserFirstSeen, error)
	UpsertUserFirstSeen(ctx context.Context, entries []domain.UserFirstSeen) error
	TermFirstSeen(ctx context.Context, terms []string) (map[string]string, error)
	UpsertTermFirstSeen(ctx context.Context, entries []domain.TermFirstSeen) error
}

// RollupStore is the surface the retention rollup works against.
type RollupStore interface {
	// JourneyDates returns every distinct date with journey rows, sorted.
	JourneyDates(ctx context.Context) ([]string, error)

	FetchJourneysByDate(ctx context.Context, date string) ([]*domain.Journey, error)

	// UpsertDailyJourneyAggregate overwrites the permanent rollup row for
	// the aggregate's date.
	UpsertDailyJourneyAggregate(ctx context.Context, agg *domain.DailyJourneyAggregate) error

	// RolledUpDates returns the set of dates present in the permanent
	// rollup table.
	RolledUpDates(ctx context.Context) (map[string]bool, error)

	DeleteJourneysByDate(ctx context.Context, date string) error
}

// AggregateReader serves the read API.
type AggregateReader interface {
	QueryJourneys(ctx context.Context, fromDate, toDate string) ([]*domain.Journey, error)
	QueryDailyAggregates(ctx context.Context, fromDate, toDate string) ([]*domain.DailyAggregate, error)
	QueryTermAggregates(ctx context.Context, fromDate, toDate, term string) ([]*domain.TermAggregate, error)
	QueryDailyJourneyAggregates(ctx context.Context, fromDate, toDate string) ([]*domain.DailyJourneyAggregate, error)
}

// Repository is the full storage surface of the pipeline.
type Repository interface {
	RawEventStore
	DerivedStore
	FirstSeenStore
	RollupStore
	AggregateReader

	// InitSchema creates the tables if they do not exist.
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive.
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources.
	Close() error
}
