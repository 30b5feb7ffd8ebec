package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/karim/wadhifa/internal/types"
)

// InsertApplication records a job application and bumps the posting's
// application count. A second application from the same user for the same
// job returns DuplicateSubmissionError and leaves the original untouched.
func (db *DB) InsertApplication(ctx context.Context, jobID string, userID uuid.UUID, p types.ApplicationPayload) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO applications
			(job_id, candidate_id, full_name, email, phone, resume_url,
			 years_experience, expected_salary, notice_period, cover_letter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (job_id, candidate_id) DO NOTHING
		 RETURNING id`,
		jobID, userID, p.FullName, p.Email, p.Phone, p.ResumeURL,
		p.YearsExperience, p.ExpectedSalary, p.NoticePeriod, p.CoverLetter,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict target hit: the user already applied.
			return uuid.Nil, &DuplicateSubmissionError{Kind: "application", EntityID: jobID}
		}
		return uuid.Nil, fmt.Errorf("failed to insert application: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`,
		jobID,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to bump application count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit application: %w", err)
	}
	return id, nil
}

// ListAppliedJobIDs returns the IDs of every job the user has applied to.
func (db *DB) ListAppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM applications WHERE candidate_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan applied job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
