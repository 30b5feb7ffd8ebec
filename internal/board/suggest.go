package board

import (
	"context"
	"strings"
	"sync"
	"time"
)

// defaultDebounce matches the typeahead delay the web client uses.
const defaultDebounce = 300 * time.Millisecond

// SuggestFunc fetches title completions for a prefix.
type SuggestFunc func(ctx context.Context, prefix string) ([]string, error)

// Suggester debounces keystrokes into suggestion fetches. Only the latest
// keystroke's fetch may publish results; responses for superseded prefixes
// are discarded even if they arrive last.
type Suggester struct {
	fetch   SuggestFunc
	publish func([]string)
	delay   time.Duration

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewSuggester wires a fetch function to a publish callback. delay <= 0 uses
// the default debounce window.
func NewSuggester(fetch SuggestFunc, publish func([]string), delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Suggester{fetch: fetch, publish: publish, delay: delay}
}

// Input feeds one keystroke's worth of text. An empty or whitespace-only
// prefix cancels any pending fetch and clears the published suggestions
// immediately.
func (s *Suggester) Input(ctx context.Context, text string) {
	prefix := strings.TrimSpace(text)

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if prefix == "" {
		s.mu.Unlock()
		s.publish(nil)
		return
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(ctx, seq, prefix)
	})
	s.mu.Unlock()
}

// Cancel drops any pending fetch without clearing published suggestions.
func (s *Suggester) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Suggester) run(ctx context.Context, seq uint64, prefix string) {
	items, err := s.fetch(ctx, prefix)

	s.mu.Lock()
	stale := seq != s.seq
	s.mu.Unlock()
	if stale || err != nil {
		// Suggestions are best effort; a failed fetch just leaves the
		// previous list in place.
		return
	}
	s.publish(items)
}
