package types

import "github.com/google/uuid"

// CandidateProfile is the subset of a user's onboarding data relevant to
// match scoring. It is owned by the authenticated user and never mutated by
// the board core.
type CandidateProfile struct {
	UserID             uuid.UUID         `json:"user_id"`
	PreferredRoles     []string          `json:"preferred_roles"`
	YearsExperience    *int              `json:"years_experience,omitempty"`
	Country            string            `json:"country"`
	PreferredLocations []string          `json:"preferred_locations"`
	WorkArrangements   []WorkArrangement `json:"work_arrangements"`
	Industries         []string          `json:"industries"`
	Skills             []string          `json:"skills"`
	SpeaksArabic       bool              `json:"speaks_arabic"`
}
