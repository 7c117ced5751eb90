package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore connects to TEST_DATABASE_URL, migrates it and empties every
// table. Tests are skipped when the variable is unset.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	_, dirty, err := RunMigrations(url, "../../../db/migrations")
	require.NoError(t, err)
	require.False(t, dirty)

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)

	_, err = pool.Exec(context.Background(), "TRUNCATE transactions, events, announcements, treasury")
	require.NoError(t, err)

	s := NewStore(pool)
	t.Cleanup(s.Close)
	return s
}

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, models.Transaction{
		Amount:      decimal.RequireFromString("1234.56"),
		Description: "Hall hire",
		Details:     models.ExpenseDetails{Category: "Venue Rent"},
		Date:        day(3),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := s.GetTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", got.Amount.StringFixed(2))
	assert.Equal(t, models.Expense, got.Kind())
	assert.Equal(t, "Venue Rent", got.ExpenseCategory())
	assert.True(t, got.Date.Equal(day(3)))

	got.Details = models.IncomeDetails{ReceivedFrom: "Bob"}
	updated, err := s.UpdateTransaction(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, models.Income, updated.Kind())
	assert.Equal(t, "", updated.ExpenseCategory())

	require.NoError(t, s.DeleteTransaction(ctx, created.ID))
	assert.ErrorIs(t, s.DeleteTransaction(ctx, created.ID), store.ErrNotFound)

	_, err = s.GetTransaction(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBalanceUpsert(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	b, err := s.GetBalance(ctx)
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())

	b, err = s.AdjustBalance(ctx, decimal.NewFromInt(-40))
	require.NoError(t, err)
	assert.Equal(t, "-40.00", b.Amount.StringFixed(2))

	b, err = s.AdjustBalance(ctx, decimal.RequireFromString("100.25"))
	require.NoError(t, err)
	assert.Equal(t, "60.25", b.Amount.StringFixed(2))
}

func TestWithTxRollback(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.CreateTransaction(ctx, models.Transaction{
			Amount:      decimal.NewFromInt(10),
			Description: "dues",
			Details:     models.IncomeDetails{ReceivedFrom: "Alice"},
			Date:        day(1),
		}); err != nil {
			return err
		}
		if _, err := tx.AdjustBalance(ctx, decimal.NewFromInt(10)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := s.ListTransactions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)

	b, err := s.GetBalance(ctx)
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
}

func TestEventsAndAnnouncements(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	ev, err := s.CreateEvent(ctx, models.Event{Title: "Picnic", Description: "x", Date: day(2), Status: models.Upcoming})
	require.NoError(t, err)

	toggled, err := s.ToggleEventStatus(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Ongoing, toggled.Status)

	ongoing, err := s.ListEvents(ctx, models.Ongoing)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)

	upcoming, err := s.ListEvents(ctx, models.Upcoming)
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	for i := 1; i <= 3; i++ {
		_, err := s.CreateAnnouncement(ctx, models.Announcement{Title: "A", Content: "c", Date: day(i)})
		require.NoError(t, err)
	}
	latest, err := s.ListAnnouncements(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.True(t, latest[0].Date.Equal(day(3)))
}

func TestWatchReceivesCommittedChanges(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	seen := map[string]bool{}
	go s.Watch(ctx, func(collection string) {
		mu.Lock()
		seen[collection] = true
		mu.Unlock()
	})

	// LISTEN is issued asynchronously; keep writing until it is observed.
	require.Eventually(t, func() bool {
		_, err := s.CreateEvent(context.Background(), models.Event{Title: "T", Description: "d", Date: day(1), Status: models.Upcoming})
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		return seen[store.Events]
	}, 5*time.Second, 100*time.Millisecond)
}
