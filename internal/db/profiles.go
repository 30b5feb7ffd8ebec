package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/karim/wadhifa/internal/types"
)

// GetProfile retrieves a user's candidate profile, or nil when the user has
// not completed onboarding.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.CandidateProfile, error) {
	var p types.CandidateProfile
	var arrangements []string
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, preferred_roles, years_experience, country,
		        preferred_locations, work_arrangements, industries, skills, speaks_arabic
		 FROM candidate_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.PreferredRoles, &p.YearsExperience, &p.Country,
		&p.PreferredLocations, &arrangements, &p.Industries, &p.Skills, &p.SpeaksArabic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	for _, a := range arrangements {
		p.WorkArrangements = append(p.WorkArrangements, types.WorkArrangement(a))
	}
	return &p, nil
}

// UpsertProfile creates or replaces a user's candidate profile
func (db *DB) UpsertProfile(ctx context.Context, p *types.CandidateProfile) error {
	arrangements := make([]string, len(p.WorkArrangements))
	for i, a := range p.WorkArrangements {
		arrangements[i] = string(a)
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles
			(user_id, preferred_roles, years_experience, country,
			 preferred_locations, work_arrangements, industries, skills, speaks_arabic)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
			preferred_roles = $2, years_experience = $3, country = $4,
			preferred_locations = $5, work_arrangements = $6, industries = $7,
			skills = $8, speaks_arabic = $9, updated_at = NOW()`,
		p.UserID, p.PreferredRoles, p.YearsExperience, p.Country,
		p.PreferredLocations, arrangements, p.Industries, p.Skills, p.SpeaksArabic,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
