package ledger

import (
	"context"
	"fmt"
	"time"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/shopspring/decimal"
)

// TxRunner is the part of store.Store the service needs.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx store.Tx) error) error
}

// Service applies admin transaction edits together with their balance
// adjustments.
type Service struct {
	store TxRunner
	now   func() time.Time
}

func NewService(s TxRunner) *Service {
	return &Service{store: s, now: time.Now}
}

// Create validates in and records it, adding its signed amount to the
// balance.
func (s *Service) Create(ctx context.Context, in models.TransactionInput) (models.Transaction, error) {
	t, err := in.Transaction(s.now())
	if err != nil {
		return models.Transaction{}, err
	}

	var created models.Transaction
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		created, err = tx.CreateTransaction(ctx, t)
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return adjustBalance(ctx, tx, CreateDelta(created.Kind(), created.Amount))
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return created, nil
}

// Update replaces transaction id with in. The delta is computed against
// the stored record, read in the same store transaction.
func (s *Service) Update(ctx context.Context, id string, in models.TransactionInput) (models.Transaction, error) {
	t, err := in.Transaction(s.now())
	if err != nil {
		return models.Transaction{}, err
	}
	t.ID = id

	var updated models.Transaction
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		updated, err = tx.UpdateTransaction(ctx, t)
		if err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		delta := UpdateDelta(old.Kind(), old.Amount, updated.Kind(), updated.Amount)
		return adjustBalance(ctx, tx, delta)
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return updated, nil
}

// Delete removes transaction id and reverses its contribution.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx store.Tx) error {
		old, err := tx.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, id); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return adjustBalance(ctx, tx, DeleteDelta(old.Kind(), old.Amount))
	})
}

// adjustBalance applies delta and rejects results outside the balance range,
// which rolls back the surrounding store transaction.
func adjustBalance(ctx context.Context, tx store.Tx, delta decimal.Decimal) error {
	b, err := tx.AdjustBalance(ctx, delta)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}
	if b.Amount.Abs().Cmp(models.MaxBalance) >= 0 {
		return models.ErrBalanceOutOfRange
	}
	return nil
}
