// Package board drives the job list/detail split view: filters, pagination,
// match scoring, selection, and the save/vote affordances embedded in list
// items.
package board

import (
	"context"
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/karim/wadhifa/internal/matching"
	"github.com/karim/wadhifa/internal/query"
	"github.com/karim/wadhifa/internal/toggle"
	"github.com/karim/wadhifa/internal/types"
)

// Page is one page of fetch results plus the total row count for computing
// page bounds.
type Page struct {
	Items []types.Job
	Total int
}

// Fetcher executes a job list query remotely.
type Fetcher interface {
	FetchJobs(ctx context.Context, q query.Descriptor) (Page, error)
}

// ScoredJob pairs a job with its match score against the cached profile.
type ScoredJob struct {
	Job   types.Job
	Score int
}

// Orchestrator owns the board's shared mutable state: the current filter and
// page, the scored job list, the selection, and the saved/applied id sets.
// All mutation goes through its methods; concurrent fetch responses are
// serialized by issue-order sequence numbers so a stale response never
// clobbers a fresher one.
type Orchestrator struct {
	fetcher    Fetcher
	saveMutate toggle.MutateFunc

	mu         sync.Mutex
	profile    *types.CandidateProfile
	filters    types.FilterState
	page       int
	jobs       []ScoredJob
	total      int
	selectedID string
	saved      mapset.Set[string]
	applied    mapset.Set[string]
	voted      mapset.Set[string]
	saveBtns   map[string]*toggle.Toggle
	voteBtns   map[string]*toggle.Toggle
	fetchSeq   uint64
}

// New creates an orchestrator. profile may be nil (anonymous browsing: all
// scores are zero). saveMutate backs the per-job save toggles and may be nil
// when saving is unavailable.
func New(fetcher Fetcher, profile *types.CandidateProfile, saveMutate toggle.MutateFunc) *Orchestrator {
	return &Orchestrator{
		fetcher:    fetcher,
		saveMutate: saveMutate,
		profile:    profile,
		page:       1,
		saved:      mapset.NewSet[string](),
		applied:    mapset.NewSet[string](),
		voted:      mapset.NewSet[string](),
		saveBtns:   make(map[string]*toggle.Toggle),
		voteBtns:   make(map[string]*toggle.Toggle),
	}
}

// UpdateFilters applies a filter mutation, resets to the first page, and
// refreshes the list.
func (o *Orchestrator) UpdateFilters(ctx context.Context, apply func(*types.FilterState)) error {
	o.mu.Lock()
	apply(&o.filters)
	o.filters = o.filters.Normalize()
	o.page = 1
	o.mu.Unlock()
	return o.Refresh(ctx)
}

// SetPage moves to a 1-based page and refreshes.
func (o *Orchestrator) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	o.mu.Lock()
	o.page = page
	o.mu.Unlock()
	return o.Refresh(ctx)
}

// Refresh re-executes the current query. If another refresh was issued while
// this one was in flight, the stale result is discarded: only the latest
// issued request may update the board.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	o.fetchSeq++
	seq := o.fetchSeq
	q := query.Build(o.filters, o.page)
	o.mu.Unlock()

	page, err := o.fetcher.FetchJobs(ctx, q)

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.fetchSeq {
		// Superseded while in flight; a newer request owns the board now.
		return nil
	}
	if err != nil {
		return &NetworkError{Op: "fetch jobs", Err: err}
	}

	o.jobs = o.scoreLocked(page.Items)
	o.total = page.Total
	o.reconcileSelectionLocked()
	return nil
}

// SetProfile replaces the cached candidate profile and re-scores the current
// list without refetching.
func (o *Orchestrator) SetProfile(profile *types.CandidateProfile) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.profile = profile
	for i := range o.jobs {
		o.jobs[i].Score = matching.Score(&o.jobs[i].Job, profile)
	}
}

func (o *Orchestrator) scoreLocked(items []types.Job) []ScoredJob {
	scored := make([]ScoredJob, len(items))
	for i, job := range items {
		scored[i] = ScoredJob{Job: job, Score: matching.Score(&job, o.profile)}
	}
	return scored
}

// reconcileSelectionLocked keeps the selection if it survived the refresh,
// otherwise selects the first item (or nothing on an empty page).
func (o *Orchestrator) reconcileSelectionLocked() {
	for _, sj := range o.jobs {
		if sj.Job.ID == o.selectedID {
			return
		}
	}
	if len(o.jobs) > 0 {
		o.selectedID = o.jobs[0].Job.ID
	} else {
		o.selectedID = ""
	}
}

// Jobs returns the current scored page.
func (o *Orchestrator) Jobs() []ScoredJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]ScoredJob, len(o.jobs))
	copy(out, o.jobs)
	return out
}

// Total returns the total match count across all pages.
func (o *Orchestrator) Total() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.total
}

// Filters returns a copy of the active filter state.
func (o *Orchestrator) Filters() types.FilterState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filters
}

// PageCount returns the number of pages for the current total.
func (o *Orchestrator) PageCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.total == 0 {
		return 0
	}
	return (o.total + query.PageSize - 1) / query.PageSize
}

// Select marks a job as the detail-pane selection. Unknown ids are rejected.
func (o *Orchestrator) Select(jobID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, sj := range o.jobs {
		if sj.Job.ID == jobID {
			o.selectedID = jobID
			return true
		}
	}
	return false
}

// Selected returns the currently selected job, if any.
func (o *Orchestrator) Selected() (ScoredJob, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, sj := range o.jobs {
		if sj.Job.ID == o.selectedID {
			return sj, true
		}
	}
	return ScoredJob{}, false
}

// SeedMembership initializes the saved/applied id sets from the server
// (called once after sign-in).
func (o *Orchestrator) SeedMembership(savedIDs, appliedIDs []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.saved = mapset.NewSet(savedIDs...)
	o.applied = mapset.NewSet(appliedIDs...)
}

// IsSaved reports membership in the saved-jobs set.
func (o *Orchestrator) IsSaved(jobID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.saved.Contains(jobID)
}

// IsApplied reports whether the user already applied to the job.
func (o *Orchestrator) IsApplied(jobID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.applied.Contains(jobID)
}

// MarkApplied records a successful application submission.
func (o *Orchestrator) MarkApplied(jobID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applied.Add(jobID)
}

// SaveToggle returns the optimistic save toggle for a job, creating it on
// first use. The toggle's listener keeps the saved-jobs set in sync through
// both optimistic flips and compensating reverts.
func (o *Orchestrator) SaveToggle(jobID string) *toggle.Toggle {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tg, ok := o.saveBtns[jobID]; ok {
		return tg
	}

	savedCount := 0
	for _, sj := range o.jobs {
		if sj.Job.ID == jobID {
			savedCount = sj.Job.SavedCount
			break
		}
	}

	tg := toggle.New(jobID, o.saved.Contains(jobID), savedCount, o.saveMutate, func(id string, saved bool) {
		o.mu.Lock()
		defer o.mu.Unlock()
		if saved {
			o.saved.Add(id)
		} else {
			o.saved.Remove(id)
		}
	})
	o.saveBtns[jobID] = tg
	return tg
}

// VoteToggle returns the optimistic helpful-vote toggle for a review in the
// detail pane, creating it on first use. Reviews are not part of the job
// list, so the caller seeds the rendered helpful count and supplies the
// mutation.
func (o *Orchestrator) VoteToggle(reviewID string, count int, mutate toggle.MutateFunc) *toggle.Toggle {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tg, ok := o.voteBtns[reviewID]; ok {
		return tg
	}

	tg := toggle.New(reviewID, o.voted.Contains(reviewID), count, mutate, func(id string, voted bool) {
		o.mu.Lock()
		defer o.mu.Unlock()
		if voted {
			o.voted.Add(id)
		} else {
			o.voted.Remove(id)
		}
	})
	o.voteBtns[reviewID] = tg
	return tg
}

// HasVoted reports whether the user's helpful vote is on for a review.
func (o *Orchestrator) HasVoted(reviewID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.voted.Contains(reviewID)
}

// NetworkError marks a transient remote failure. Callers may retry by
// re-issuing the operation; nothing was partially applied.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
