package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karim/wadhifa/internal/query"
	"github.com/karim/wadhifa/internal/types"
)

func TestBuildJobWhere_NoConstraints(t *testing.T) {
	where, args, err := buildJobWhere(query.Descriptor{})
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildJobWhere_NumbersArgsInOrder(t *testing.T) {
	cutoff := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	q := query.Descriptor{
		Predicates: []query.Predicate{
			{Field: "country", Op: query.OpEq, Value: "Egypt"},
			{Field: "visa_sponsorship", Op: query.OpEq, Value: true},
			{Field: "posted_at", Op: query.OpGte, Value: cutoff},
		},
	}

	where, args, err := buildJobWhere(q)
	require.NoError(t, err)
	assert.Equal(t,
		" WHERE j.country = $1 AND j.visa_sponsorship = $2 AND j.posted_at >= $3",
		where)
	assert.Equal(t, []any{"Egypt", true, cutoff}, args)
}

func TestBuildJobWhere_IndustryTargetsCompanyColumn(t *testing.T) {
	q := query.Descriptor{
		Predicates: []query.Predicate{
			{Field: "company_industry", Op: query.OpEq, Value: "fintech"},
		},
	}

	where, _, err := buildJobWhere(q)
	require.NoError(t, err)
	assert.Contains(t, where, "c.industry = $1")
}

func TestBuildJobWhere_SearchSpansTitleDescriptionCompany(t *testing.T) {
	q := query.Descriptor{Search: "backend"}

	where, args, err := buildJobWhere(q)
	require.NoError(t, err)
	assert.Equal(t,
		" WHERE (j.title ILIKE $1 OR j.description ILIKE $1 OR c.name ILIKE $1)",
		where)
	assert.Equal(t, []any{"%backend%"}, args)
}

func TestBuildJobWhere_RejectsUnknownField(t *testing.T) {
	q := query.Descriptor{
		Predicates: []query.Predicate{{Field: "salary; DROP TABLE jobs", Op: query.OpEq, Value: 1}},
	}

	_, _, err := buildJobWhere(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter field")
}

func TestSortOrders_CoverEverySortOption(t *testing.T) {
	for _, sort := range []types.SortOption{types.SortNewest, types.SortSalary, types.SortApplications} {
		assert.Contains(t, sortOrders, sort)
	}

	assert.Contains(t, sortOrders[types.SortNewest], "j.featured DESC")
	assert.Contains(t, sortOrders[types.SortSalary], "NULLS LAST")
	assert.Contains(t, sortOrders[types.SortApplications], "j.application_count DESC")
}
