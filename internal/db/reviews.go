package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/karim/wadhifa/internal/types"
)

// InsertReview records a company review. A second review from the same user
// for the same company returns DuplicateSubmissionError.
func (db *DB) InsertReview(ctx context.Context, companyID string, userID uuid.UUID, p types.ReviewPayload) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reviews
			(company_id, author_id, rating, employment_status, job_title,
			 years_at_company, pros, cons, headline, advice, anonymous)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (company_id, author_id) DO NOTHING
		 RETURNING id`,
		companyID, userID, p.Rating, p.EmploymentStatus, p.JobTitle,
		p.YearsAtCompany, p.Pros, p.Cons, p.Headline, p.Advice, p.Anonymous,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, &DuplicateSubmissionError{Kind: "review", EntityID: companyID}
		}
		return uuid.Nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return id, nil
}

// ListReviews retrieves a company's reviews, newest first. Author IDs are
// blanked for anonymous reviews.
func (db *DB) ListReviews(ctx context.Context, companyID string, limit int) ([]types.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id,
		        CASE WHEN anonymous THEN '' ELSE author_id::text END,
		        rating, headline, pros, cons, advice, anonymous, helpful_count, created_at
		 FROM reviews WHERE company_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		companyID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []types.Review
	for rows.Next() {
		var r types.Review
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.AuthorID, &r.Rating, &r.Headline,
			&r.Pros, &r.Cons, &r.Advice, &r.Anonymous, &r.HelpfulCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ToggleHelpfulVote flips the user's helpful vote on a review and returns
// the new vote state plus the authoritative helpful count.
func (db *DB) ToggleHelpfulVote(ctx context.Context, reviewID string, userID uuid.UUID) (bool, int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleted, err := tx.Exec(ctx,
		`DELETE FROM review_helpful_votes WHERE review_id = $1 AND user_id = $2`,
		reviewID, userID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("failed to remove helpful vote: %w", err)
	}

	voted := deleted.RowsAffected() == 0
	if voted {
		_, err = tx.Exec(ctx,
			`INSERT INTO review_helpful_votes (review_id, user_id) VALUES ($1, $2)`,
			reviewID, userID,
		)
		if err != nil {
			return false, 0, fmt.Errorf("failed to add helpful vote: %w", err)
		}
	}

	delta := -1
	if voted {
		delta = 1
	}
	var count int
	err = tx.QueryRow(ctx,
		`UPDATE reviews SET helpful_count = helpful_count + $1 WHERE id = $2 RETURNING helpful_count`,
		delta, reviewID,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, &NotFoundError{Resource: "review", ID: reviewID}
		}
		return false, 0, fmt.Errorf("failed to update helpful count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to commit helpful vote: %w", err)
	}
	return voted, count, nil
}
