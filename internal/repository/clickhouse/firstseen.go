package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/dallmi/SearchAnalytics/internal/domain"
)

// UserFirstSeen loads the persisted first-seen entries for the given users.
// Users never seen before are simply absent from the result.
func (r *Repository) UserFirstSeen(ctx context.Context, userIDs []string) (map[string]domain.UserFirstSeen, error) {
	result := make(map[string]domain.UserFirstSeen, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	rows, err := r.client.Conn().Query(ctx,
		`SELECT user_id, first_date, first_start FROM user_first_seen FINAL WHERE user_id IN (?)`,
		userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query user first-seen index: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry     domain.UserFirstSeen
			firstDate time.Time
		)
		if err := rows.Scan(&entry.UserID, &firstDate, &entry.FirstStart); err != nil {
			return nil, fmt.Errorf("failed to scan user first-seen row: %w", err)
		}
		entry.FirstDate = firstDate.Format("2006-01-02")
		result[entry.UserID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user first-seen rows: %w", err)
	}
	return result, nil
}

// UpsertUserFirstSeen overwrites index entries; the latest inserted version
// of a user id wins on merge.
func (r *Repository) UpsertUserFirstSeen(ctx context.Context, entries []domain.UserFirstSeen) error {
	if len(entries) == 0 {
		return nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO user_first_seen")
	if err != nil {
		return fmt.Errorf("failed to prepare user first-seen batch: %w", err)
	}
	now := time.Now().UTC()
	for _, entry := range entries {
		if err := batch.Append(entry.UserID, dateValue(entry.FirstDate), entry.FirstStart, now); err != nil {
			return fmt.Errorf("failed to append user first-seen entry: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send user first-seen batch: %w", err)
	}
	return nil
}

// TermFirstSeen loads the first appearance dates for the given terms.
func (r *Repository) TermFirstSeen(ctx context.Context, terms []string) (map[string]string, error) {
	result := make(map[string]string, len(terms))
	if len(terms) == 0 {
		return result, nil
	}

	rows, err := r.client.Conn().Query(ctx,
		`SELECT term, first_date FROM term_first_seen FINAL WHERE term IN (?)`,
		terms)
	if err != nil {
		return nil, fmt.Errorf("failed to query term first-seen index: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			term      string
			firstDate time.Time
		)
		if err := rows.Scan(&term, &firstDate); err != nil {
			return nil, fmt.Errorf("failed to scan term first-seen row: %w", err)
		}
		result[term] = firstDate.Format("2006-01-02")
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating term first-seen rows: %w", err)
	}
	return result, nil
}

// UpsertTermFirstSeen overwrites term index entries.
func (r *Repository) UpsertTermFirstSeen(ctx context.Context, entries []domain.TermFirstSeen) error {
	if len(entries) == 0 {
		return nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO term_first_seen")
	if err != nil {
		return fmt.Errorf("failed to prepare term first-seen batch: %w", err)
	}
	now := time.Now().UTC()
	for _, entry := range entries {
		if err := batch.Append(entry.Term, dateValue(entry.FirstDate), now); err != nil {
			return fmt.Errorf("failed to append term first-seen entry: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send term first-seen batch: %w", err)
	}
	return nil
}
