// Package query translates the board's filter state into the predicate set
// executed by the storage layer.
package query

import (
	"time"

	"github.com/karim/wadhifa/internal/types"
)

// PageSize is the fixed number of jobs per page.
const PageSize = 10

// Op identifies the predicate kind.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
)

// Predicate is a single field constraint. Values are equality matches except
// for the posted-at cutoff, which is a lower bound.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Descriptor is the storage-agnostic description of one job list query:
// predicates, an OR-search over title/description, ordering, and the page
// window. The executor returns the page items plus a total count.
type Descriptor struct {
	Predicates []Predicate
	Search     string
	Sort       types.SortOption
	Page       int
	Limit      int
	Offset     int
}

// Build produces the descriptor for a filter state and a 1-based page
// number. The posted-within window is resolved against the current time.
func Build(f types.FilterState, page int) Descriptor {
	return buildAt(f, page, time.Now())
}

// buildAt is Build with an injectable clock.
func buildAt(f types.FilterState, page int, now time.Time) Descriptor {
	f = f.Normalize()
	if page < 1 {
		page = 1
	}

	d := Descriptor{
		Search: f.Search,
		Sort:   f.Sort,
		Page:   page,
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	}

	// Absent values (empty string, false) produce no predicate rather than a
	// match-nothing constraint.
	if f.Country != "" {
		d.Predicates = append(d.Predicates, Predicate{Field: "country", Op: OpEq, Value: f.Country})
	}
	if f.Seniority != "" {
		d.Predicates = append(d.Predicates, Predicate{Field: "seniority", Op: OpEq, Value: string(f.Seniority)})
	}
	if f.WorkArrangement != "" {
		d.Predicates = append(d.Predicates, Predicate{Field: "work_arrangement", Op: OpEq, Value: string(f.WorkArrangement)})
	}
	if f.Industry != "" {
		d.Predicates = append(d.Predicates, Predicate{Field: "company_industry", Op: OpEq, Value: f.Industry})
	}
	if f.VisaSponsorship {
		d.Predicates = append(d.Predicates, Predicate{Field: "visa_sponsorship", Op: OpEq, Value: true})
	}
	if f.RelocationAssistance {
		d.Predicates = append(d.Predicates, Predicate{Field: "relocation_assistance", Op: OpEq, Value: true})
	}
	if cutoff, ok := resolveWindow(f.PostedWithin, now); ok {
		d.Predicates = append(d.Predicates, Predicate{Field: "posted_at", Op: OpGte, Value: cutoff})
	}

	return d
}

// resolveWindow maps a symbolic posted-within value to an absolute cutoff.
// "any", empty, and unknown values mean no constraint.
func resolveWindow(window string, now time.Time) (time.Time, bool) {
	switch window {
	case types.PostedWithin24h:
		return now.Add(-24 * time.Hour), true
	case types.PostedWithinWeek:
		return now.AddDate(0, 0, -7), true
	case types.PostedWithinMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}
