package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karim/wadhifa/internal/types"
)

func intPtr(n int) *int { return &n }

func TestScore_NilInputs(t *testing.T) {
	assert.Equal(t, 0, Score(nil, nil))
	assert.Equal(t, 0, Score(&types.Job{}, nil))
	assert.Equal(t, 0, Score(nil, &types.CandidateProfile{}))
}

func TestScore_EmptyJobAndProfile(t *testing.T) {
	assert.Equal(t, 0, Score(&types.Job{}, &types.CandidateProfile{}))
}

func TestScore_Deterministic(t *testing.T) {
	job := &types.Job{
		Title:           "Senior Backend Engineer",
		Seniority:       types.SenioritySenior,
		WorkArrangement: types.ArrangementRemote,
		Country:         "AE",
		Requirements:    []string{"5+ years with Go", "PostgreSQL", "Redis"},
	}
	profile := &types.CandidateProfile{
		PreferredRoles:  []string{"Backend Engineer"},
		YearsExperience: intPtr(5),
		Country:         "EG",
		Skills:          []string{"Go", "PostgreSQL"},
	}

	first := Score(job, profile)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(job, profile))
	}
}

func TestScore_BoundedAtHundred(t *testing.T) {
	// Every sub-score and bonus firing at once would exceed 100 without the clamp.
	job := &types.Job{
		Title:           "Senior Engineer",
		Seniority:       types.SenioritySenior,
		WorkArrangement: types.ArrangementRemote,
		Country:         "SA",
		CompanyIndustry: "fintech",
		Requirements:    []string{"Go", "Kubernetes"},
		VisaSponsorship: true,
		ArabicRequired:  true,
	}
	profile := &types.CandidateProfile{
		PreferredRoles:   []string{"Senior Engineer"},
		YearsExperience:  intPtr(5),
		Country:          "EG",
		WorkArrangements: []types.WorkArrangement{types.ArrangementRemote},
		Industries:       []string{"fintech"},
		Skills:           []string{"Go", "Kubernetes"},
		SpeaksArabic:     true,
	}

	score := Score(job, profile)
	assert.Equal(t, 100, score)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestComputeRoleScore_ExactBeatsPartial(t *testing.T) {
	profile := &types.CandidateProfile{PreferredRoles: []string{"Senior Engineer"}}

	exact := computeRoleScore(&types.Job{Title: "Senior Engineer"}, profile)
	partial := computeRoleScore(&types.Job{Title: "Senior Backend Engineer"}, profile)

	assert.Equal(t, 25, exact)
	assert.Equal(t, 15, partial)
	assert.Greater(t, exact, partial)
}

func TestComputeRoleScore_CaseInsensitive(t *testing.T) {
	profile := &types.CandidateProfile{PreferredRoles: []string{"senior engineer"}}
	assert.Equal(t, 25, computeRoleScore(&types.Job{Title: "SENIOR ENGINEER"}, profile))
}

func TestComputeRoleScore_ShortWordsIgnored(t *testing.T) {
	// "QA" is two characters and must not trigger a partial match.
	profile := &types.CandidateProfile{PreferredRoles: []string{"QA"}}
	assert.Equal(t, 0, computeRoleScore(&types.Job{Title: "QA Engineer"}, profile))
}

func TestComputeRoleScore_NoRoles(t *testing.T) {
	assert.Equal(t, 0, computeRoleScore(&types.Job{Title: "Engineer"}, &types.CandidateProfile{}))
}

func TestComputeSeniorityScore_Distances(t *testing.T) {
	job := &types.Job{Seniority: types.SenioritySenior} // index 2

	tests := []struct {
		name  string
		years int
		want  int
	}{
		{"same level", 4, 20},    // 4 years -> senior (2), distance 0
		{"one level off", 7, 10}, // 7 years -> lead (3), distance 1
		{"two levels off", 0, 0}, // 0 years -> junior (0), distance 2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &types.CandidateProfile{YearsExperience: intPtr(tt.years)}
			assert.Equal(t, tt.want, computeSeniorityScore(job, profile))
		})
	}
}

func TestComputeSeniorityScore_MissingInputs(t *testing.T) {
	assert.Equal(t, 0, computeSeniorityScore(&types.Job{Seniority: types.SenioritySenior}, &types.CandidateProfile{}))
	assert.Equal(t, 0, computeSeniorityScore(&types.Job{}, &types.CandidateProfile{YearsExperience: intPtr(3)}))
	assert.Equal(t, 0, computeSeniorityScore(&types.Job{Seniority: "unicorn"}, &types.CandidateProfile{YearsExperience: intPtr(3)}))
}

func TestComputeLocationScore_RemoteAlwaysFull(t *testing.T) {
	job := &types.Job{WorkArrangement: types.ArrangementRemote, Country: "US"}
	profile := &types.CandidateProfile{Country: "JO", PreferredLocations: []string{"EG"}}

	assert.Equal(t, 20, computeLocationScore(job, profile))
}

func TestComputeLocationScore_CountryMatch(t *testing.T) {
	job := &types.Job{WorkArrangement: types.ArrangementOnSite, Country: "ae"}
	profile := &types.CandidateProfile{Country: "AE"}
	assert.Equal(t, 20, computeLocationScore(job, profile))
}

func TestComputeLocationScore_PreferredLocation(t *testing.T) {
	job := &types.Job{WorkArrangement: types.ArrangementHybrid, Country: "SA"}
	profile := &types.CandidateProfile{Country: "EG", PreferredLocations: []string{"SA", "AE"}}
	assert.Equal(t, 15, computeLocationScore(job, profile))
}

func TestComputeLocationScore_NoOverlap(t *testing.T) {
	job := &types.Job{WorkArrangement: types.ArrangementOnSite, Country: "US"}
	profile := &types.CandidateProfile{Country: "EG", PreferredLocations: []string{"SA"}}
	assert.Equal(t, 0, computeLocationScore(job, profile))
}

func TestComputeArrangementScore(t *testing.T) {
	job := &types.Job{WorkArrangement: types.ArrangementHybrid}

	accepted := &types.CandidateProfile{WorkArrangements: []types.WorkArrangement{types.ArrangementRemote, types.ArrangementHybrid}}
	rejected := &types.CandidateProfile{WorkArrangements: []types.WorkArrangement{types.ArrangementRemote}}

	assert.Equal(t, 15, computeArrangementScore(job, accepted))
	assert.Equal(t, 0, computeArrangementScore(job, rejected))
}

func TestComputeIndustryScore(t *testing.T) {
	job := &types.Job{CompanyIndustry: "Fintech"}

	assert.Equal(t, 10, computeIndustryScore(job, &types.CandidateProfile{Industries: []string{"fintech", "logistics"}}))
	assert.Equal(t, 0, computeIndustryScore(job, &types.CandidateProfile{Industries: []string{"healthcare"}}))
	assert.Equal(t, 0, computeIndustryScore(&types.Job{}, &types.CandidateProfile{Industries: []string{"fintech"}}))
}

func TestComputeSkillsScore_Fraction(t *testing.T) {
	job := &types.Job{Requirements: []string{"Experience with Go and PostgreSQL", "CI/CD pipelines"}}

	// 2 of 4 skills found -> 0.5 * 10 = 5
	profile := &types.CandidateProfile{Skills: []string{"Go", "PostgreSQL", "Rust", "Erlang"}}
	assert.Equal(t, 5, computeSkillsScore(job, profile))

	// All found -> 10
	allIn := &types.CandidateProfile{Skills: []string{"Go", "PostgreSQL"}}
	assert.Equal(t, 10, computeSkillsScore(job, allIn))
}

func TestComputeSkillsScore_EmptySides(t *testing.T) {
	assert.Equal(t, 0, computeSkillsScore(&types.Job{}, &types.CandidateProfile{Skills: []string{"Go"}}))
	assert.Equal(t, 0, computeSkillsScore(&types.Job{Requirements: []string{"Go"}}, &types.CandidateProfile{}))
}

func TestComputeSkillsScore_SubstringHeuristic(t *testing.T) {
	// Known quirk kept from the scoring rules: "Go" matches inside "Google".
	job := &types.Job{Requirements: []string{"Experience with Google Cloud"}}
	profile := &types.CandidateProfile{Skills: []string{"Go"}}
	assert.Equal(t, 10, computeSkillsScore(job, profile))
}

func TestComputeBonuses(t *testing.T) {
	tests := []struct {
		name    string
		job     types.Job
		profile types.CandidateProfile
		want    int
	}{
		{
			name:    "visa bonus cross border",
			job:     types.Job{VisaSponsorship: true, Country: "AE"},
			profile: types.CandidateProfile{Country: "EG"},
			want:    5,
		},
		{
			name:    "no visa bonus same country",
			job:     types.Job{VisaSponsorship: true, Country: "AE"},
			profile: types.CandidateProfile{Country: "ae"},
			want:    0,
		},
		{
			name:    "arabic bonus",
			job:     types.Job{ArabicRequired: true},
			profile: types.CandidateProfile{SpeaksArabic: true},
			want:    3,
		},
		{
			name:    "arabic flag without fluency",
			job:     types.Job{ArabicRequired: true},
			profile: types.CandidateProfile{SpeaksArabic: false},
			want:    0,
		},
		{
			name:    "both bonuses",
			job:     types.Job{VisaSponsorship: true, Country: "SA", ArabicRequired: true},
			profile: types.CandidateProfile{Country: "MA", SpeaksArabic: true},
			want:    8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeBonuses(&tt.job, &tt.profile))
		})
	}
}

func TestScore_RemoteJobWithNoOverlapStillScoresLocation(t *testing.T) {
	job := &types.Job{WorkArrangement: types.ArrangementRemote, Country: "US"}
	profile := &types.CandidateProfile{Country: "EG"}

	assert.GreaterOrEqual(t, Score(job, profile), 20)
}
