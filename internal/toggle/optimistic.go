// Package toggle implements optimistic binary toggles (save-job,
// helpful-vote) with two-phase commit against a server mutation: apply
// locally, then confirm with the authoritative count or compensate by
// reverting.
package toggle

import (
	"context"
	"errors"
	"sync"
)

// MutationResult is the server's answer to a toggle mutation. Value is the
// authoritative boolean; Count, when present, is the authoritative aggregate
// counter (saved count, helpful count).
type MutationResult struct {
	Success bool
	Value   bool
	Count   *int
	Err     string
}

// MutateFunc issues the server mutation for id.
type MutateFunc func(ctx context.Context, id string) (MutationResult, error)

// Listener is notified on every local value change, including reverts, so a
// parent view (e.g. a saved-jobs set) can stay in sync.
type Listener func(id string, value bool)

// Outcome is what a caller of Toggle observes once the mutation settles.
type Outcome struct {
	Success  bool
	NewValue bool
	NewCount *int
}

// ErrMutationRejected is returned when the server answers the mutation with
// success=false rather than a transport failure.
var ErrMutationRejected = errors.New("toggle mutation rejected")

// Toggle holds one affordance's local boolean and count.
type Toggle struct {
	id       string
	mutate   MutateFunc
	onChange Listener

	mu    sync.Mutex
	value bool
	count int
}

// New creates a toggle for id seeded with the server-rendered value and
// count. onChange may be nil.
func New(id string, value bool, count int, mutate MutateFunc, onChange Listener) *Toggle {
	return &Toggle{id: id, value: value, count: count, mutate: mutate, onChange: onChange}
}

// Value returns the current local boolean.
func (t *Toggle) Value() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Count returns the current local count.
func (t *Toggle) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Toggle flips the local value immediately, notifies the listener, then
// issues the mutation. On success the count is reconciled to the server's
// authoritative number. On any failure the value reverts to what it was
// immediately before this specific call, so rapid repeated toggles each
// compensate exactly their own flip.
func (t *Toggle) Toggle(ctx context.Context) (Outcome, error) {
	if t.mutate == nil {
		return Outcome{Success: false, NewValue: t.Value()}, ErrMutationRejected
	}

	t.mu.Lock()
	prev := t.value
	t.value = !prev
	applied := t.value
	t.mu.Unlock()

	t.notify(applied)

	res, err := t.mutate(ctx, t.id)
	if err != nil || !res.Success {
		t.mu.Lock()
		t.value = prev
		t.mu.Unlock()
		t.notify(prev)

		if err == nil {
			if res.Err != "" {
				err = errors.New(res.Err)
			} else {
				err = ErrMutationRejected
			}
		}
		return Outcome{Success: false, NewValue: prev}, err
	}

	if res.Count != nil {
		t.mu.Lock()
		t.count = *res.Count
		t.mu.Unlock()
	}
	return Outcome{Success: true, NewValue: applied, NewCount: res.Count}, nil
}

func (t *Toggle) notify(value bool) {
	if t.onChange != nil {
		t.onChange(t.id, value)
	}
}
