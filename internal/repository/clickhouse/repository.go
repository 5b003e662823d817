package clickhouse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// Repository implements repository.Repository on ClickHouse. Raw events
// live in a ReplacingMergeTree keyed by natural key, which gives the
// upsert-by-key batch semantics; every derived table is plain MergeTree and
// is rewritten per date range by the pipeline.
type Repository struct {
	client *Client
	loc    *time.Location
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository. loc is the pipeline
// calendar used to derive a raw event's session date at insert time.
func NewRepository(client *Client, loc *time.Location, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		loc:    loc,
		log:    log,
	}
}

// Ping checks if the ClickHouse connection is alive.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection.
func (r *Repository) Close() error {
	return r.client.Close()
}

// InsertRawEvents appends a normalized batch to the raw table. Rows whose
// natural key is already stored are superseded on merge; reads always go
// through FINAL so the latest version wins immediately.
func (r *Repository) InsertRawEvents(ctx context.Context, events []*domain.RawEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO raw_events")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare raw event batch: %w", err)
	}

	now := time.Now().UTC()
	for _, event := range events {
		err := batch.Append(
			event.NaturalKey(),
			event.Timestamp,
			event.EventType,
			event.UserID,
			event.SessionID,
			dateValue(domain.DateOf(event.Timestamp, r.loc)),
			event.Query,
			event.ResultCountRaw,
			event.ClickedPosition,
			event.ClickedTab,
			event.ClickedTitle,
			event.ClickedURL,
			event.AppliedFilter,
			event.QueryLanguage,
			event.Device,
			event.Department,
			event.Location,
			event.Seq,
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append raw event to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send raw event batch: %w", err)
	}

	return len(events), nil
}

// FetchRawEvents returns the deduplicated raw events for the inclusive
// date range, ordered by timestamp then ingestion sequence.
func (r *Repository) FetchRawEvents(ctx context.Context, fromDate, toDate string) ([]*domain.RawEvent, error) {
	query := `
	SELECT
		timestamp, event_type, user_id, session_id,
		query, result_count_raw,
		clicked_position, clicked_tab, clicked_title, clicked_url,
		applied_filter, query_language, device, department, location,
		seq
	FROM raw_events FINAL
	WHERE session_date >= ? AND session_date <= ?
	ORDER BY timestamp, seq
	`

	rows, err := r.client.Conn().Query(ctx, query, dateValue(fromDate), dateValue(toDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query raw events: %w", err)
	}
	defer rows.Close()

	var events []*domain.RawEvent
	for rows.Next() {
		var e domain.RawEvent
		if err := rows.Scan(
			&e.Timestamp, &e.EventType, &e.UserID, &e.SessionID,
			&e.Query, &e.ResultCountRaw,
			&e.ClickedPosition, &e.ClickedTab, &e.ClickedTitle, &e.ClickedURL,
			&e.AppliedFilter, &e.QueryLanguage, &e.Device, &e.Department, &e.Location,
			&e.Seq,
		); err != nil {
			return nil, fmt.Errorf("failed to scan raw event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw events: %w", err)
	}
	return events, nil
}

// ListRawEventDates returns every distinct session date in the raw table.
func (r *Repository) ListRawEventDates(ctx context.Context) ([]string, error) {
	rows, err := r.client.Conn().Query(ctx,
		`SELECT DISTINCT session_date FROM raw_events ORDER BY session_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw event dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan session date: %w", err)
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session dates: %w", err)
	}
	return dates, nil
}

// dateValue parses an ISO date into the time value the Date column expects.
func dateValue(date string) time.Time {
	d, _ := time.Parse("2006-01-02", date)
	return d
}
