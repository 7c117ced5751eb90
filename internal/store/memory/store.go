// Package memory is an in-process implementation of store.Store, used for
// local development and tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store keeps every collection in maps guarded by a single mutex. Watchers
// are notified after the mutex is released.
type Store struct {
	mu            sync.Mutex
	transactions  map[string]models.Transaction
	events        map[string]models.Event
	announcements map[string]models.Announcement
	balance       *models.Balance
	seq           map[string]uint64
	nextSeq       uint64
	now           func() time.Time

	watchMu     sync.Mutex
	watchers    map[int]func(string)
	nextWatcher int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		transactions:  make(map[string]models.Transaction),
		events:        make(map[string]models.Event),
		announcements: make(map[string]models.Announcement),
		seq:           make(map[string]uint64),
		now:           time.Now,
		watchers:      make(map[int]func(string)),
	}
}

type snapshot struct {
	transactions  map[string]models.Transaction
	events        map[string]models.Event
	announcements map[string]models.Announcement
	balance       *models.Balance
	seq           map[string]uint64
	nextSeq       uint64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		transactions:  maps.Clone(s.transactions),
		events:        maps.Clone(s.events),
		announcements: maps.Clone(s.announcements),
		seq:           maps.Clone(s.seq),
		nextSeq:       s.nextSeq,
	}
	if s.balance != nil {
		b := *s.balance
		snap.balance = &b
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.transactions = snap.transactions
	s.events = snap.events
	s.announcements = snap.announcements
	s.balance = snap.balance
	s.seq = snap.seq
	s.nextSeq = snap.nextSeq
}

// write runs fn under the store lock. On error every change fn made is
// rolled back; on success watchers are told which collections changed.
func (s *Store) write(fn func(tx *memTx) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	tx := &memTx{s: s, changed: make(map[string]bool)}
	err := fn(tx)
	if err != nil {
		s.restore(snap)
	}
	s.mu.Unlock()

	if err == nil {
		for collection := range tx.changed {
			s.notify(collection)
		}
	}
	return err
}

func (s *Store) read(fn func(tx *memTx)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&memTx{s: s})
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.write(func(tx *memTx) error { return fn(tx) })
}

func (s *Store) CreateTransaction(ctx context.Context, t models.Transaction) (out models.Transaction, err error) {
	err = s.write(func(tx *memTx) error {
		var e error
		out, e = tx.CreateTransaction(ctx, t)
		return e
	})
	return out, err
}

func (s *Store) GetTransaction(ctx context.Context, id string) (out models.Transaction, err error) {
	s.read(func(tx *memTx) { out, err = tx.GetTransaction(ctx, id) })
	return out, err
}

func (s *Store) UpdateTransaction(ctx context.Context, t models.Transaction) (out models.Transaction, err error) {
	err = s.write(func(tx *memTx) error {
		var e error
		out, e = tx.UpdateTransaction(ctx, t)
		return e
	})
	return out, err
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.write(func(tx *memTx) error { return tx.DeleteTransaction(ctx, id) })
}

func (s *Store) AdjustBalance(ctx context.Context, delta decimal.Decimal) (out models.Balance, err error) {
	err = s.write(func(tx *memTx) error {
		var e error
		out, e = tx.AdjustBalance(ctx, delta)
		return e
	})
	return out, err
}

func (s *Store) ListTransactions(ctx context.Context, limit int) (out []models.Transaction, err error) {
	s.read(func(tx *memTx) {
		out = make([]models.Transaction, 0, len(s.transactions))
		for _, t := range s.transactions {
			out = append(out, t)
		}
		sort.Slice(out, func(i, j int) bool {
			return tx.newer(out[i].ID, out[i].Date, out[j].ID, out[j].Date)
		})
		out = truncate(out, limit)
	})
	return out, nil
}

func (s *Store) GetBalance(ctx context.Context) (out models.Balance, err error) {
	s.read(func(tx *memTx) {
		if s.balance != nil {
			out = *s.balance
		}
	})
	return out, nil
}

func (s *Store) ListEvents(ctx context.Context, status models.EventStatus) (out []models.Event, err error) {
	s.read(func(tx *memTx) {
		out = make([]models.Event, 0, len(s.events))
		for _, e := range s.events {
			if status == "" || e.Status == status {
				out = append(out, e)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return tx.newer(out[i].ID, out[i].Date, out[j].ID, out[j].Date)
		})
	})
	return out, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (out models.Event, err error) {
	s.read(func(tx *memTx) {
		e, ok := s.events[id]
		if !ok {
			err = store.ErrNotFound
			return
		}
		out = e
	})
	return out, err
}

func (s *Store) CreateEvent(ctx context.Context, e models.Event) (out models.Event, err error) {
	err = s.write(func(tx *memTx) error {
		now := s.now()
		e.ID = uuid.NewString()
		e.CreatedAt, e.UpdatedAt = now, now
		tx.insert(e.ID)
		s.events[e.ID] = e
		tx.changed[store.Events] = true
		out = e
		return nil
	})
	return out, err
}

func (s *Store) UpdateEvent(ctx context.Context, e models.Event) (out models.Event, err error) {
	err = s.write(func(tx *memTx) error {
		existing, ok := s.events[e.ID]
		if !ok {
			return store.ErrNotFound
		}
		e.CreatedAt = existing.CreatedAt
		e.UpdatedAt = s.now()
		s.events[e.ID] = e
		tx.changed[store.Events] = true
		out = e
		return nil
	})
	return out, err
}

func (s *Store) ToggleEventStatus(ctx context.Context, id string) (out models.Event, err error) {
	err = s.write(func(tx *memTx) error {
		e, ok := s.events[id]
		if !ok {
			return store.ErrNotFound
		}
		e.Status = e.Status.Toggle()
		e.UpdatedAt = s.now()
		s.events[id] = e
		tx.changed[store.Events] = true
		out = e
		return nil
	})
	return out, err
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.write(func(tx *memTx) error {
		if _, ok := s.events[id]; !ok {
			return store.ErrNotFound
		}
		delete(s.events, id)
		delete(s.seq, id)
		tx.changed[store.Events] = true
		return nil
	})
}

func (s *Store) ListAnnouncements(ctx context.Context, limit int) (out []models.Announcement, err error) {
	s.read(func(tx *memTx) {
		out = make([]models.Announcement, 0, len(s.announcements))
		for _, a := range s.announcements {
			out = append(out, a)
		}
		sort.Slice(out, func(i, j int) bool {
			return tx.newer(out[i].ID, out[i].Date, out[j].ID, out[j].Date)
		})
		out = truncate(out, limit)
	})
	return out, nil
}

func (s *Store) GetAnnouncement(ctx context.Context, id string) (out models.Announcement, err error) {
	s.read(func(tx *memTx) {
		a, ok := s.announcements[id]
		if !ok {
			err = store.ErrNotFound
			return
		}
		out = a
	})
	return out, err
}

func (s *Store) CreateAnnouncement(ctx context.Context, a models.Announcement) (out models.Announcement, err error) {
	err = s.write(func(tx *memTx) error {
		now := s.now()
		a.ID = uuid.NewString()
		a.CreatedAt, a.UpdatedAt = now, now
		tx.insert(a.ID)
		s.announcements[a.ID] = a
		tx.changed[store.Announcements] = true
		out = a
		return nil
	})
	return out, err
}

func (s *Store) UpdateAnnouncement(ctx context.Context, a models.Announcement) (out models.Announcement, err error) {
	err = s.write(func(tx *memTx) error {
		existing, ok := s.announcements[a.ID]
		if !ok {
			return store.ErrNotFound
		}
		a.CreatedAt = existing.CreatedAt
		a.UpdatedAt = s.now()
		s.announcements[a.ID] = a
		tx.changed[store.Announcements] = true
		out = a
		return nil
	})
	return out, err
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.write(func(tx *memTx) error {
		if _, ok := s.announcements[id]; !ok {
			return store.ErrNotFound
		}
		delete(s.announcements, id)
		delete(s.seq, id)
		tx.changed[store.Announcements] = true
		return nil
	})
}

// Watch registers fn until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func(collection string)) error {
	s.watchMu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = fn
	s.watchMu.Unlock()

	<-ctx.Done()

	s.watchMu.Lock()
	delete(s.watchers, id)
	s.watchMu.Unlock()
	return nil
}

func (s *Store) notify(collection string) {
	s.watchMu.Lock()
	fns := make([]func(string), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watchMu.Unlock()

	for _, fn := range fns {
		fn(collection)
	}
}

func (s *Store) Close() {}

// memTx operates on the store maps directly; the caller holds s.mu.
type memTx struct {
	s       *Store
	changed map[string]bool
}

func (tx *memTx) insert(id string) {
	tx.s.nextSeq++
	tx.s.seq[id] = tx.s.nextSeq
}

// newer orders by date descending, then by insertion descending.
func (tx *memTx) newer(idA string, dateA time.Time, idB string, dateB time.Time) bool {
	if !dateA.Equal(dateB) {
		return dateA.After(dateB)
	}
	return tx.s.seq[idA] > tx.s.seq[idB]
}

func (tx *memTx) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	now := tx.s.now()
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = now, now
	tx.insert(t.ID)
	tx.s.transactions[t.ID] = t
	tx.changed[store.Transactions] = true
	return t, nil
}

func (tx *memTx) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	t, ok := tx.s.transactions[id]
	if !ok {
		return models.Transaction{}, store.ErrNotFound
	}
	return t, nil
}

func (tx *memTx) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	existing, ok := tx.s.transactions[t.ID]
	if !ok {
		return models.Transaction{}, store.ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = tx.s.now()
	tx.s.transactions[t.ID] = t
	tx.changed[store.Transactions] = true
	return t, nil
}

func (tx *memTx) DeleteTransaction(ctx context.Context, id string) error {
	if _, ok := tx.s.transactions[id]; !ok {
		return store.ErrNotFound
	}
	delete(tx.s.transactions, id)
	delete(tx.s.seq, id)
	tx.changed[store.Transactions] = true
	return nil
}

func (tx *memTx) AdjustBalance(ctx context.Context, delta decimal.Decimal) (models.Balance, error) {
	b := models.Balance{Amount: delta}
	if tx.s.balance != nil {
		b.Amount = tx.s.balance.Amount.Add(delta)
	}
	b.UpdatedAt = tx.s.now()
	tx.s.balance = &b
	tx.changed[store.Treasury] = true
	return b, nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

var _ store.Store = (*Store)(nil)
