// Package store defines the document store the treasury service persists
// to. Implementations live in the memory and postgres subpackages.
package store

import (
	"context"
	"errors"

	"opentreasury/internal/models"

	"github.com/shopspring/decimal"
)

// Collection names, also used as change notification payloads.
const (
	Transactions  = "transactions"
	Events        = "events"
	Announcements = "announcements"
	Treasury      = "treasury"
)

// Collections lists every collection name.
var Collections = []string{Transactions, Events, Announcements, Treasury}

var ErrNotFound = errors.New("document not found")

// Tx is the set of writes that must commit together with a balance change.
type Tx interface {
	CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// AdjustBalance adds delta to the singleton balance, creating the record
	// with balance = delta when it does not exist yet.
	AdjustBalance(ctx context.Context, delta decimal.Decimal) (models.Balance, error)
}

// Store is the full document store. Lists are ordered by date descending,
// newest creation first on ties. A limit of 0 means no limit.
type Store interface {
	Tx

	// WithTx runs fn atomically. If fn returns an error nothing it wrote is
	// kept.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	GetBalance(ctx context.Context) (models.Balance, error)

	ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, e models.Event) (models.Event, error)
	ToggleEventStatus(ctx context.Context, id string) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListAnnouncements(ctx context.Context, limit int) ([]models.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (models.Announcement, error)
	CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error

	// Watch calls fn with a collection name after every committed change to
	// that collection. It blocks until ctx is done.
	Watch(ctx context.Context, fn func(collection string)) error

	Close()
}
