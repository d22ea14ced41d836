package equitycache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pokerequity-server/pkg/db"
	"pokerequity-server/pkg/poker/equity"
)

// PostgresStore persists equity results in the equity_cache table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the given database handle
func NewPostgresStore(dbh *sql.DB) *PostgresStore {
	return &PostgresStore{db: dbh}
}

func getResultByRow(row db.Scanner) (*equity.Result, error) {
	var winJSON, tieJSON, loseJSON []byte
	var samples int

	if err := row.Scan(&winJSON, &tieJSON, &loseJSON, &samples); err != nil {
		return nil, err
	}

	result := &equity.Result{Samples: samples}
	if err := json.Unmarshal(winJSON, &result.Win); err != nil {
		return nil, fmt.Errorf("could not decode win column: %w", err)
	}
	if err := json.Unmarshal(tieJSON, &result.Tie); err != nil {
		return nil, fmt.Errorf("could not decode tie column: %w", err)
	}
	if err := json.Unmarshal(loseJSON, &result.Lose); err != nil {
		return nil, fmt.Errorf("could not decode lose column: %w", err)
	}

	return result, nil
}

// Get returns the stored result and bumps the row's access statistics
func (s *PostgresStore) Get(ctx context.Context, key string) (*equity.Result, bool, error) {
	const query = `
SELECT win, tie, lose, samples
FROM equity_cache
WHERE key = $1`

	result, err := getResultByRow(s.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, err
	}

	const update = `
UPDATE equity_cache
SET last_accessed = $1,
    access_count = access_count + 1
WHERE key = $2`

	// access stats are best-effort
	_, _ = s.db.ExecContext(ctx, update, epochMs(), key)

	return result, true, nil
}

// Set stores a result, replacing any existing row for the key
func (s *PostgresStore) Set(ctx context.Context, key string, result *equity.Result) error {
	winJSON, err := json.Marshal(result.Win)
	if err != nil {
		return err
	}
	tieJSON, err := json.Marshal(result.Tie)
	if err != nil {
		return err
	}
	loseJSON, err := json.Marshal(result.Lose)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO equity_cache (key, win, tie, lose, samples, created_at, last_accessed, access_count)
VALUES ($1, $2, $3, $4, $5, $6, $6, 0)
ON CONFLICT (key) DO UPDATE
SET win           = EXCLUDED.win,
    tie           = EXCLUDED.tie,
    lose          = EXCLUDED.lose,
    samples       = EXCLUDED.samples,
    last_accessed = EXCLUDED.last_accessed`

	_, err = s.db.ExecContext(ctx, query, key, winJSON, tieJSON, loseJSON, result.Samples, epochMs())
	return err
}

// Clear removes every cached row
func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM equity_cache`)
	return err
}

// Stats reports entry count, total accesses, and the most accessed keys
func (s *PostgresStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(access_count), 0)
FROM equity_cache`)
	if err := row.Scan(&stats.Entries, &stats.TotalAccesses); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT key, access_count
FROM equity_cache
ORDER BY access_count DESC, key
LIMIT $1`, TopAccessedLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ka KeyAccess
		if err := rows.Scan(&ka.Key, &ka.Count); err != nil {
			return nil, err
		}

		stats.MostAccessed = append(stats.MostAccessed, ka)
	}

	return stats, rows.Err()
}

// Cleanup removes entries not accessed within maxAge and returns the number
// of rows deleted
func (s *PostgresStore) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixMilli()

	res, err := s.db.ExecContext(ctx, `DELETE FROM equity_cache WHERE last_accessed < $1`, cutoff)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// Close is a no-op; the database handle is shared
func (s *PostgresStore) Close() error {
	return nil
}

func epochMs() int64 {
	return time.Now().UnixMilli()
}
