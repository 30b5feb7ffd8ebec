package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ToggleSaveJob flips the user's saved state for a job and returns the new
// state plus the authoritative saved count.
func (db *DB) ToggleSaveJob(ctx context.Context, jobID string, userID uuid.UUID) (bool, int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleted, err := tx.Exec(ctx,
		`DELETE FROM saved_jobs WHERE job_id = $1 AND user_id = $2`,
		jobID, userID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("failed to unsave job: %w", err)
	}

	saved := deleted.RowsAffected() == 0
	if saved {
		_, err = tx.Exec(ctx,
			`INSERT INTO saved_jobs (job_id, user_id) VALUES ($1, $2)`,
			jobID, userID,
		)
		if err != nil {
			return false, 0, fmt.Errorf("failed to save job: %w", err)
		}
	}

	delta := -1
	if saved {
		delta = 1
	}
	var count int
	err = tx.QueryRow(ctx,
		`UPDATE jobs SET saved_count = saved_count + $1 WHERE id = $2 RETURNING saved_count`,
		delta, jobID,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, &NotFoundError{Resource: "job", ID: jobID}
		}
		return false, 0, fmt.Errorf("failed to update saved count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to commit save toggle: %w", err)
	}
	return saved, count, nil
}

// ListSavedJobIDs returns the IDs of every job the user has saved.
func (db *DB) ListSavedJobIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM saved_jobs WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan saved job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
