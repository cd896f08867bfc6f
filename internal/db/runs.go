package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IndexRun records one indexing run: which path was indexed into which
// collection, how many chunks were upserted and how long it took.
type IndexRun struct {
	ID         string        `json:"id"`
	Path       string        `json:"path"`
	Collection string        `json:"collection"`
	Chunks     int           `json:"chunks"`
	Duration   time.Duration `json:"duration"`
	StartedAt  time.Time     `json:"started_at"`
}

// RecordRun persists a completed indexing run.
func (d *DB) RecordRun(ctx context.Context, run IndexRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := d.ExecContext(ctx,
		`INSERT INTO index_runs (id, path, collection, chunks, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Path, run.Collection, run.Chunks,
		run.Duration.Milliseconds(), run.StartedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("recording index run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns returns the most recent indexing runs, newest first.
func (d *DB) RecentRuns(ctx context.Context, limit int) ([]IndexRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.QueryContext(ctx,
		`SELECT id, path, collection, chunks, duration_ms, started_at
		 FROM index_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index runs: %w", err)
	}
	defer rows.Close()

	var runs []IndexRun
	for rows.Next() {
		var (
			run        IndexRun
			durationMS int64
			startedAt  string
		)
		if err := rows.Scan(&run.ID, &run.Path, &run.Collection, &run.Chunks, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scanning index run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			run.StartedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
