// Package types provides type definitions for structured data used throughout the job board.
package types

import "time"

// WorkArrangement describes where a job is performed.
type WorkArrangement string

const (
	ArrangementRemote WorkArrangement = "remote"
	ArrangementHybrid WorkArrangement = "hybrid"
	ArrangementOnSite WorkArrangement = "on_site"
)

// Seniority is one of the fixed 8-level seniority ladder values.
type Seniority string

const (
	SeniorityJunior   Seniority = "junior"
	SeniorityMid      Seniority = "mid"
	SenioritySenior   Seniority = "senior"
	SeniorityLead     Seniority = "lead"
	SeniorityManager  Seniority = "manager"
	SeniorityDirector Seniority = "director"
	SeniorityVP       Seniority = "vp"
	SeniorityCLevel   Seniority = "c-level"
)

// SeniorityLadder is the fixed ordering used for distance-based comparisons.
var SeniorityLadder = []Seniority{
	SeniorityJunior,
	SeniorityMid,
	SenioritySenior,
	SeniorityLead,
	SeniorityManager,
	SeniorityDirector,
	SeniorityVP,
	SeniorityCLevel,
}

// Index returns the position of s in the seniority ladder, or -1 for
// unknown values.
func (s Seniority) Index() int {
	for i, level := range SeniorityLadder {
		if level == s {
			return i
		}
	}
	return -1
}

// SeniorityIndexForYears maps years of experience to a ladder index via
// fixed thresholds: <=1 junior, <=3 mid, <=5 senior, <=10 lead, else manager+.
func SeniorityIndexForYears(years int) int {
	switch {
	case years <= 1:
		return 0
	case years <= 3:
		return 1
	case years <= 5:
		return 2
	case years <= 10:
		return 3
	default:
		return 4
	}
}

// Job represents a job posting. Postings are created by the employer-facing
// flow and are read-only to the board core.
type Job struct {
	ID                   string          `json:"id"`
	CompanyID            string          `json:"company_id"`
	CompanyName          string          `json:"company_name"`
	CompanyIndustry      string          `json:"company_industry"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Seniority            Seniority       `json:"seniority"`
	WorkArrangement      WorkArrangement `json:"work_arrangement"`
	Country              string          `json:"country"`
	City                 string          `json:"city,omitempty"`
	Requirements         []string        `json:"requirements"`
	SalaryMin            *int            `json:"salary_min,omitempty"`
	SalaryMax            *int            `json:"salary_max,omitempty"`
	VisaSponsorship      bool            `json:"visa_sponsorship"`
	RelocationAssistance bool            `json:"relocation_assistance"`
	ArabicRequired       bool            `json:"arabic_required"`
	Featured             bool            `json:"featured"`
	ApplicationCount     int             `json:"application_count"`
	SavedCount           int             `json:"saved_count"`
	PostedAt             time.Time       `json:"posted_at"`
}
