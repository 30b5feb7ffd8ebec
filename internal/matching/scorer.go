// Package matching scores job postings against a candidate profile.
package matching

import (
	"math"
	"strings"

	"github.com/karim/wadhifa/internal/types"
)

// Point values for each scoring component. Every contribution is
// non-negative and independently capped, so the final clamp only ever
// applies an upper bound.
const (
	roleExactPoints    = 25
	rolePartialPoints  = 15
	seniorityMaxPoints = 20
	locationMaxPoints  = 20
	locationNearPoints = 15
	arrangementPoints  = 15
	industryPoints     = 10
	skillsMaxPoints    = 10
	visaBonusPoints    = 5
	arabicBonusPoints  = 3

	maxScore = 100
)

// Score computes a deterministic match score in [0,100] for a job against a
// candidate profile. Missing fields on either side contribute zero to the
// corresponding sub-score; Score never panics.
func Score(job *types.Job, profile *types.CandidateProfile) int {
	if job == nil || profile == nil {
		return 0
	}

	total := computeRoleScore(job, profile) +
		computeSeniorityScore(job, profile) +
		computeLocationScore(job, profile) +
		computeArrangementScore(job, profile) +
		computeIndustryScore(job, profile) +
		computeSkillsScore(job, profile) +
		computeBonuses(job, profile)

	if total > maxScore {
		total = maxScore
	}
	return total
}

// computeRoleScore awards 25 for an exact case-insensitive title match with
// any preferred role, else 15 when any preferred-role word longer than two
// characters appears in the title. Exact and partial are mutually exclusive.
func computeRoleScore(job *types.Job, profile *types.CandidateProfile) int {
	if job.Title == "" || len(profile.PreferredRoles) == 0 {
		return 0
	}

	titleLower := strings.ToLower(job.Title)
	for _, role := range profile.PreferredRoles {
		if strings.EqualFold(strings.TrimSpace(role), job.Title) {
			return roleExactPoints
		}
	}

	for _, role := range profile.PreferredRoles {
		for _, word := range strings.Fields(strings.ToLower(role)) {
			if len(word) > 2 && strings.Contains(titleLower, word) {
				return rolePartialPoints
			}
		}
	}
	return 0
}

// computeSeniorityScore compares the job's position on the fixed 8-level
// ladder against the level implied by the profile's years of experience.
// Distance 0 scores 20, distance 1 scores 10, anything further scores 0.
func computeSeniorityScore(job *types.Job, profile *types.CandidateProfile) int {
	if profile.YearsExperience == nil {
		return 0
	}
	jobIdx := job.Seniority.Index()
	if jobIdx < 0 {
		return 0
	}

	profileIdx := types.SeniorityIndexForYears(*profile.YearsExperience)
	distance := jobIdx - profileIdx
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return seniorityMaxPoints
	case 1:
		return seniorityMaxPoints / 2
	default:
		return 0
	}
}

// computeLocationScore awards the full 20 for remote jobs regardless of
// profile location, 20 for a country match, and 15 when the job's country is
// one of the profile's preferred locations.
func computeLocationScore(job *types.Job, profile *types.CandidateProfile) int {
	if job.WorkArrangement == types.ArrangementRemote {
		return locationMaxPoints
	}
	if job.Country == "" {
		return 0
	}
	if profile.Country != "" && strings.EqualFold(job.Country, profile.Country) {
		return locationMaxPoints
	}
	for _, loc := range profile.PreferredLocations {
		if strings.EqualFold(job.Country, loc) {
			return locationNearPoints
		}
	}
	return 0
}

func computeArrangementScore(job *types.Job, profile *types.CandidateProfile) int {
	if job.WorkArrangement == "" {
		return 0
	}
	for _, arr := range profile.WorkArrangements {
		if arr == job.WorkArrangement {
			return arrangementPoints
		}
	}
	return 0
}

func computeIndustryScore(job *types.Job, profile *types.CandidateProfile) int {
	if job.CompanyIndustry == "" {
		return 0
	}
	for _, industry := range profile.Industries {
		if strings.EqualFold(industry, job.CompanyIndustry) {
			return industryPoints
		}
	}
	return 0
}

// computeSkillsScore scores the fraction of profile skills that appear as
// case-insensitive substrings anywhere in the concatenated requirements
// text, scaled to 10 points and rounded to the nearest integer.
func computeSkillsScore(job *types.Job, profile *types.CandidateProfile) int {
	if len(profile.Skills) == 0 || len(job.Requirements) == 0 {
		return 0
	}

	requirementsText := strings.ToLower(strings.Join(job.Requirements, " "))
	matched := 0
	for _, skill := range profile.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(requirementsText, skill) {
			matched++
		}
	}

	points := int(math.Round(float64(matched) / float64(len(profile.Skills)) * skillsMaxPoints))
	if points > skillsMaxPoints {
		points = skillsMaxPoints
	}
	return points
}

// computeBonuses awards +5 when the job sponsors visas for a country other
// than the candidate's, and +3 when the job wants Arabic and the candidate
// speaks it.
func computeBonuses(job *types.Job, profile *types.CandidateProfile) int {
	bonus := 0
	if job.VisaSponsorship && job.Country != "" && !strings.EqualFold(job.Country, profile.Country) {
		bonus += visaBonusPoints
	}
	if job.ArabicRequired && profile.SpeaksArabic {
		bonus += arabicBonusPoints
	}
	return bonus
}
