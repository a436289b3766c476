package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/async"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// State is a snapshot of a Resource.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     *apiclient.Error
	// Generation is the id of the most recently issued request.
	Generation uint64
}

// Resource is one bound remote resource. It is safe for concurrent use.
type Resource[T any] struct {
	fetch Fetcher[T]
	path  string
	opts  options
	log   *slog.Logger

	events *broadcast.MemoryBroadcaster[State[T]]

	mu      sync.Mutex
	state   State[T]
	issued  uint64
	params  url.Values
	depsKey string
	bound   bool
	closed  bool
}

// New creates an unbound resource for path. Nothing is fetched until Bind or
// Refetch is called.
func New[T any](fetcher Fetcher[T], path string, opts ...Option) *Resource[T] {
	o := options{
		name:     path,
		logger:   logger.Nop(),
		classify: apiclient.Classify,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Resource[T]{
		fetch:  fetcher,
		path:   path,
		opts:   o,
		log:    o.logger.With(logger.Component("fetch"), slog.String("resource", o.name)),
		events: broadcast.NewMemoryBroadcaster[State[T]](4),
		params: url.Values{},
	}
}

// Bind records params as the latest bound parameters and issues a request
// if this is the first bind or the dependency set differs from the previous
// one. Binding again with equal dependencies issues nothing.
func (r *Resource[T]) Bind(ctx context.Context, params url.Values, deps ...any) State[T] {
	key := dependencyKey(deps)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.params = cloneValues(params)
	if r.closed || (r.bound && key == r.depsKey) {
		return r.state
	}
	r.bound = true
	r.depsKey = key
	r.issueLocked(ctx, r.params)
	return r.state
}

// Refetch issues a new request with params, or with the latest bound
// parameters when none are given. The future resolves with the state after
// this request was applied, or with ErrSuperseded if a newer request was
// issued before it completed. A failed request resolves with the state and
// its *apiclient.Error.
func (r *Resource[T]) Refetch(ctx context.Context, params ...url.Values) *async.Future[State[T]] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return async.Resolved(r.state, ErrClosed)
	}
	p := r.params
	if len(params) > 0 {
		p = cloneValues(params[0])
	}
	return r.issueLocked(ctx, p)
}

// State returns the current snapshot.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe delivers a snapshot after every state change until ctx ends.
func (r *Resource[T]) Subscribe(ctx context.Context) broadcast.Subscriber[State[T]] {
	return r.events.Subscribe(ctx)
}

// Close unbinds the resource. Responses still in flight are discarded.
func (r *Resource[T]) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()
	return r.events.Close()
}

func (r *Resource[T]) issueLocked(ctx context.Context, params url.Values) *async.Future[State[T]] {
	r.issued++
	gen := r.issued

	r.state.Loading = true
	r.state.Err = nil
	r.state.Generation = gen
	r.publishLocked(ctx)

	r.opts.metrics.FetchIssued(r.opts.name)
	r.log.DebugContext(ctx, "fetch issued", logger.Generation(gen))

	// A cancelled ctx fails the request, but its generation still settles so
	// Loading is never left set.
	return async.Go(func() (State[T], error) {
		data, err := r.fetch(ctx, r.path, params)
		return r.settle(context.WithoutCancel(ctx), gen, data, err)
	})
}

func (r *Resource[T]) settle(ctx context.Context, gen uint64, data T, err error) (State[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || gen != r.issued {
		r.opts.metrics.FetchDiscarded(r.opts.name)
		r.log.DebugContext(ctx, "stale response discarded",
			logger.Generation(gen),
			slog.Uint64("current", r.issued),
		)
		return State[T]{}, ErrSuperseded
	}

	r.state.Loading = false
	if err != nil {
		e := r.classify(err)
		r.state.Err = e
		if r.opts.clearOnFail {
			var zero T
			r.state.Data, r.state.HasData = zero, false
		}
		r.opts.metrics.FetchSettled(r.opts.name, string(e.Kind))
		r.log.WarnContext(ctx, "fetch failed", logger.Generation(gen), logger.Error(err))
		r.publishLocked(ctx)
		return r.state, e
	}

	r.state.Data, r.state.HasData, r.state.Err = data, true, nil
	r.opts.metrics.FetchSettled(r.opts.name, "ok")
	r.publishLocked(ctx)
	return r.state, nil
}

// classify keeps server messages and network messages, and replaces the
// generic fallback with the fetch-specific one.
func (r *Resource[T]) classify(err error) *apiclient.Error {
	e := r.opts.classify(err)
	if e.Kind == apiclient.KindNetwork || e.Kind == apiclient.KindUnauthorized {
		return e
	}
	return e.WithFallback(r.opts.localizer.T("error.fetch"))
}

func (r *Resource[T]) publishLocked(ctx context.Context) {
	if r.closed {
		return
	}
	r.events.Publish(ctx, r.state)
}

func dependencyKey(deps []any) string {
	if len(deps) == 0 {
		return ""
	}
	raw, err := json.Marshal(deps)
	if err != nil {
		return fmt.Sprintf("%#v", deps)
	}
	return string(raw)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
