package filter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Change is delivered to subscribers on every URL change.
type Change struct {
	Query    string
	Previous State
	Current  State
}

// PageOnly reports whether the change touched nothing but the page.
func (c Change) PageOnly() bool {
	return c.Previous.SameFilters(c.Current) && c.Previous.Page != c.Current.Page
}

// Sync derives State from a Location. The URL is the single source of
// truth: Update writes to the location and the state follows from it.
type Sync struct {
	loc    Location
	logger *slog.Logger
	events *broadcast.MemoryBroadcaster[Change]

	updateMu sync.Mutex // serializes Update so fn always sees the latest state

	mu       sync.Mutex
	state    State
	unlisten func()
	closed   bool
}

// SyncOption configures a Sync.
type SyncOption func(*Sync)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SyncOption {
	return func(s *Sync) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSync decodes the current location and starts following it.
func NewSync(loc Location, opts ...SyncOption) *Sync {
	s := &Sync{
		loc:    loc,
		logger: logger.Nop(),
		events: broadcast.NewMemoryBroadcaster[Change](8),
		state:  Decode(loc.Query()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unlisten = loc.Listen(s.onChange)
	return s
}

// State returns the state decoded from the current URL.
func (s *Sync) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the current query string.
func (s *Sync) Query() string {
	return s.loc.Query()
}

// Update applies fn to the current state and pushes the encoded result as a
// new history entry. It returns the resulting state. A result whose filters
// or sort differ from the current state always lands on the first page.
func (s *Sync) Update(fn func(State) State) State {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	prev := s.State()
	next := Normalize(fn(prev))
	if !prev.SameFilters(next) {
		next.Page = 0
	}
	s.loc.Push(Encode(next))
	return s.State()
}

// SetPage moves to page without touching the filters.
func (s *Sync) SetPage(page int) State {
	return s.Update(func(st State) State { return st.WithPage(page) })
}

// Reset clears every filter.
func (s *Sync) Reset() State {
	return s.Update(func(st State) State { return st.Reset() })
}

// Subscribe delivers a Change on every URL change until ctx ends.
func (s *Sync) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return s.events.Subscribe(ctx)
}

// Close stops following the location and ends all subscriptions.
func (s *Sync) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	unlisten := s.unlisten
	s.mu.Unlock()

	unlisten()
	return s.events.Close()
}

func (s *Sync) onChange(string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Re-read instead of trusting the argument so concurrent navigations
	// always settle on the latest URL.
	query := s.loc.Query()
	next := Decode(query)
	if next.Equal(s.state) {
		return
	}
	change := Change{Query: query, Previous: s.state, Current: next}
	s.state = next
	s.logger.Debug("filter state changed", slog.String("query", query))
	s.events.Publish(context.Background(), change)
}
