package types

import "strings"

// SortOption selects the ordering of a job list query.
type SortOption string

const (
	SortNewest       SortOption = "newest"
	SortSalary       SortOption = "salary"
	SortApplications SortOption = "applications"
)

// Posted-within window values. Anything else is treated as "any".
const (
	PostedWithin24h   = "24h"
	PostedWithinWeek  = "week"
	PostedWithinMonth = "month"
	PostedWithinAny   = "any"
)

// FilterState holds the board's active filters. The zero value of each field
// means "no constraint": empty strings and false booleans are normalized to
// absent before reaching the query layer.
type FilterState struct {
	Search               string          `json:"search,omitempty"`
	Country              string          `json:"country,omitempty"`
	Seniority            Seniority       `json:"seniority,omitempty"`
	WorkArrangement      WorkArrangement `json:"work_arrangement,omitempty"`
	Industry             string          `json:"industry,omitempty"`
	VisaSponsorship      bool            `json:"visa_sponsorship,omitempty"`
	RelocationAssistance bool            `json:"relocation_assistance,omitempty"`
	PostedWithin         string          `json:"posted_within,omitempty"`
	Sort                 SortOption      `json:"sort,omitempty"`
}

// Normalize trims whitespace and collapses "no constraint" spellings to the
// zero value so downstream predicate building stays uniform.
func (f FilterState) Normalize() FilterState {
	f.Search = strings.TrimSpace(f.Search)
	f.Country = strings.TrimSpace(f.Country)
	f.Industry = strings.TrimSpace(f.Industry)
	f.PostedWithin = strings.TrimSpace(strings.ToLower(f.PostedWithin))
	if f.PostedWithin == PostedWithinAny {
		f.PostedWithin = ""
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
	return f
}
