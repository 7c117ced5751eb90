// Package live delivers push snapshots of named queries. A subscriber gets
// the current result on subscribe and a fresh one every time a collection
// the query reads changes.
package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var ErrUnknownQuery = errors.New("unknown live query")

// Query is a named read over one or more collections.
type Query struct {
	Name        string
	Collections []string
	Run         func(ctx context.Context) (any, error)
}

// Snapshot is one point-in-time result of a query.
type Snapshot struct {
	Query string `json:"query"`
	Data  any    `json:"data"`
}

type feed struct {
	query Query

	// deliverMu orders snapshots of this feed; subsMu guards subs only.
	deliverMu sync.Mutex
	subsMu    sync.Mutex
	subs      map[int]func(Snapshot)
}

type Hub struct {
	mu     sync.RWMutex
	feeds  map[string]*feed
	nextID int
}

func NewHub() *Hub {
	return &Hub{feeds: make(map[string]*feed)}
}

// Register adds q. Registering a name twice replaces the earlier query for
// new subscribers.
func (h *Hub) Register(q Query) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feeds[q.Name] = &feed{query: q, subs: make(map[int]func(Snapshot))}
}

// Queries lists registered query names.
func (h *Hub) Queries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.feeds))
	for name := range h.feeds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Subscribe delivers the current result of query name to fn, then every
// later snapshot until cancel is called or ctx is done. cancel is safe to
// call more than once.
func (h *Hub) Subscribe(ctx context.Context, name string, fn func(Snapshot)) (cancel func(), err error) {
	h.mu.Lock()
	f, ok := h.feeds[name]
	id := h.nextID
	h.nextID++
	h.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuery, name)
	}

	f.deliverMu.Lock()
	data, err := f.query.Run(ctx)
	if err != nil {
		f.deliverMu.Unlock()
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	fn(Snapshot{Query: name, Data: data})
	f.subsMu.Lock()
	f.subs[id] = fn
	f.subsMu.Unlock()
	f.deliverMu.Unlock()

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			f.subsMu.Lock()
			delete(f.subs, id)
			f.subsMu.Unlock()
		})
	}
	context.AfterFunc(ctx, cancel)
	return cancel, nil
}

// Notify re-runs every query that reads collection and pushes the result
// to its subscribers.
func (h *Hub) Notify(ctx context.Context, collection string) {
	h.mu.RLock()
	affected := make([]*feed, 0, len(h.feeds))
	for _, f := range h.feeds {
		if slices.Contains(f.query.Collections, collection) {
			affected = append(affected, f)
		}
	}
	h.mu.RUnlock()

	for _, f := range affected {
		f.refresh(ctx)
	}
}

func (f *feed) refresh(ctx context.Context) {
	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	f.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.subsMu.Unlock()
	if len(fns) == 0 {
		return
	}

	data, err := f.query.Run(ctx)
	if err != nil {
		slog.Error("Live query failed", "query", f.query.Name, "error", err)
		return
	}
	snap := Snapshot{Query: f.query.Name, Data: data}
	for _, fn := range fns {
		fn(snap)
	}
}

// Subscribers counts live subscriptions to name.
func (h *Hub) Subscribers(name string) int {
	h.mu.RLock()
	f, ok := h.feeds[name]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	f.subsMu.Lock()
	defer f.subsMu.Unlock()
	return len(f.subs)
}
