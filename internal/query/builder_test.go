package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karim/wadhifa/internal/types"
)

func findPredicate(d Descriptor, field string) (Predicate, bool) {
	for _, p := range d.Predicates {
		if p.Field == field {
			return p, true
		}
	}
	return Predicate{}, false
}

func TestBuild_EmptyFiltersProduceNoPredicates(t *testing.T) {
	d := Build(types.FilterState{}, 1)

	assert.Empty(t, d.Predicates)
	assert.Empty(t, d.Search)
	assert.Equal(t, types.SortNewest, d.Sort)
	assert.Equal(t, PageSize, d.Limit)
	assert.Equal(t, 0, d.Offset)
}

func TestBuild_FalseAndEmptyValuesOmitted(t *testing.T) {
	f := types.FilterState{
		Country:         "",
		VisaSponsorship: false,
		PostedWithin:    "any",
	}

	d := Build(f, 1)
	assert.Empty(t, d.Predicates)
}

func TestBuild_EqualityPredicates(t *testing.T) {
	f := types.FilterState{
		Country:              "AE",
		Seniority:            types.SenioritySenior,
		WorkArrangement:      types.ArrangementRemote,
		Industry:             "fintech",
		VisaSponsorship:      true,
		RelocationAssistance: true,
	}

	d := Build(f, 1)
	require.Len(t, d.Predicates, 6)

	for _, field := range []string{"country", "seniority", "work_arrangement", "company_industry", "visa_sponsorship", "relocation_assistance"} {
		p, ok := findPredicate(d, field)
		require.True(t, ok, "missing predicate for %s", field)
		assert.Equal(t, OpEq, p.Op)
	}
}

func TestBuild_PostedWithinCutoffs(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		window string
		want   time.Time
	}{
		{"24h", now.Add(-24 * time.Hour)},
		{"week", now.AddDate(0, 0, -7)},
		{"month", now.AddDate(0, 0, -30)},
	}

	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			d := buildAt(types.FilterState{PostedWithin: tt.window}, 1, now)

			p, ok := findPredicate(d, "posted_at")
			require.True(t, ok)
			assert.Equal(t, OpGte, p.Op)
			assert.Equal(t, tt.want, p.Value)
		})
	}
}

func TestBuild_PostedWithinAnyOrUnknownOmitted(t *testing.T) {
	for _, window := range []string{"any", "", "fortnight"} {
		d := Build(types.FilterState{PostedWithin: window}, 1)
		_, ok := findPredicate(d, "posted_at")
		assert.False(t, ok, "window %q should not produce a predicate", window)
	}
}

func TestBuild_Pagination(t *testing.T) {
	d := Build(types.FilterState{}, 3)
	assert.Equal(t, 3, d.Page)
	assert.Equal(t, PageSize, d.Limit)
	assert.Equal(t, 2*PageSize, d.Offset)

	// Page numbers below 1 clamp to the first page.
	d = Build(types.FilterState{}, 0)
	assert.Equal(t, 1, d.Page)
	assert.Equal(t, 0, d.Offset)
}

func TestBuild_SearchAndSortCarriedThrough(t *testing.T) {
	f := types.FilterState{Search: "  backend engineer ", Sort: types.SortSalary}

	d := Build(f, 1)
	assert.Equal(t, "backend engineer", d.Search)
	assert.Equal(t, types.SortSalary, d.Sort)
}

func TestBuild_DefaultSortIsNewest(t *testing.T) {
	d := Build(types.FilterState{}, 1)
	assert.Equal(t, types.SortNewest, d.Sort)
}
