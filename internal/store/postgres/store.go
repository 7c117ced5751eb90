// Package postgres implements store.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the LISTEN/NOTIFY channel fed by the change triggers in
// db/migrations.
const ChangeChannel = "collection_changed"

type Store struct {
	*Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// txQueries reads transactions with a row lock so updates and deletes see
// the version they replace.
type txQueries struct {
	*Queries
}

func (q txQueries) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	return q.getTransactionForUpdate(ctx, id)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(txQueries{Queries: New(tx)})
	})
}

// Watch listens on ChangeChannel on a dedicated connection. Notifications
// are only delivered for committed transactions.
func (s *Store) Watch(ctx context.Context, fn func(collection string)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return fmt.Errorf("listen %s: %w", ChangeChannel, err)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		slog.Debug("collection changed", "collection", n.Payload)
		fn(n.Payload)
	}
}

func (s *Store) Close() {
	s.pool.Close()
}

var _ store.Store = (*Store)(nil)
