package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publishRecorder collects every published suggestion list.
type publishRecorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *publishRecorder) publish(items []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, items)
}

func (r *publishRecorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestSuggester_DebouncesToLastKeystroke(t *testing.T) {
	var mu sync.Mutex
	var prefixes []string
	fetch := func(_ context.Context, prefix string) ([]string, error) {
		mu.Lock()
		prefixes = append(prefixes, prefix)
		mu.Unlock()
		return []string{prefix + " engineer"}, nil
	}

	rec := &publishRecorder{}
	s := NewSuggester(fetch, rec.publish, 20*time.Millisecond)
	ctx := context.Background()

	// Three keystrokes inside one debounce window: only the last fetches.
	s.Input(ctx, "d")
	s.Input(ctx, "da")
	s.Input(ctx, "dat")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"dat"}, prefixes)
	assert.Equal(t, []string{"dat engineer"}, rec.snapshot()[0])
}

func TestSuggester_EmptyInputClearsImmediately(t *testing.T) {
	fetch := func(context.Context, string) ([]string, error) {
		t.Fatal("no fetch expected for an empty prefix")
		return nil, nil
	}

	rec := &publishRecorder{}
	s := NewSuggester(fetch, rec.publish, 20*time.Millisecond)

	s.Input(context.Background(), "   ")

	calls := rec.snapshot()
	require.Len(t, calls, 1, "cleared synchronously, no debounce wait")
	assert.Nil(t, calls[0])
}

func TestSuggester_ClearCancelsPendingFetch(t *testing.T) {
	fetched := make(chan struct{}, 1)
	fetch := func(_ context.Context, prefix string) ([]string, error) {
		fetched <- struct{}{}
		return []string{prefix}, nil
	}

	rec := &publishRecorder{}
	s := NewSuggester(fetch, rec.publish, 30*time.Millisecond)
	ctx := context.Background()

	s.Input(ctx, "dev")
	s.Input(ctx, "") // before the window elapses

	select {
	case <-fetched:
		t.Fatal("pending fetch should have been cancelled")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, [][]string{nil}, rec.snapshot())
}

func TestSuggester_StaleResponseDiscarded(t *testing.T) {
	block := make(chan struct{})
	fetch := func(_ context.Context, prefix string) ([]string, error) {
		if prefix == "slow" {
			<-block
		}
		return []string{prefix}, nil
	}

	rec := &publishRecorder{}
	s := NewSuggester(fetch, rec.publish, time.Millisecond)
	ctx := context.Background()

	s.Input(ctx, "slow")
	time.Sleep(20 * time.Millisecond) // let the slow fetch start
	s.Input(ctx, "fast")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, time.Millisecond)

	close(block) // slow response lands last but must be dropped
	time.Sleep(20 * time.Millisecond)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"fast"}, calls[0])
}

func TestSuggester_FetchErrorKeepsPreviousList(t *testing.T) {
	failing := false
	fetch := func(_ context.Context, prefix string) ([]string, error) {
		if failing {
			return nil, errors.New("upstream down")
		}
		return []string{prefix}, nil
	}

	rec := &publishRecorder{}
	s := NewSuggester(fetch, rec.publish, time.Millisecond)
	ctx := context.Background()

	s.Input(ctx, "data")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, time.Millisecond)

	failing = true
	s.Input(ctx, "datab")
	time.Sleep(30 * time.Millisecond)

	assert.Len(t, rec.snapshot(), 1, "failed fetch publishes nothing")
}

func TestSuggester_CancelDropsPendingWithoutClearing(t *testing.T) {
	fetch := func(_ context.Context, prefix string) ([]string, error) {
		return []string{prefix}, nil
	}

	rec := &publishRecorder{}
	s := NewSuggester(fetch, rec.publish, time.Millisecond)
	ctx := context.Background()

	s.Input(ctx, "data")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, time.Millisecond)

	s.Input(ctx, "datab")
	s.Cancel()
	time.Sleep(30 * time.Millisecond)

	// The cancelled fetch never publishes; the earlier list stands.
	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"data"}, calls[0])
}

func TestSuggester_DefaultDelayApplied(t *testing.T) {
	s := NewSuggester(func(context.Context, string) ([]string, error) { return nil, nil }, func([]string) {}, 0)
	assert.Equal(t, defaultDebounce, s.delay)
}
