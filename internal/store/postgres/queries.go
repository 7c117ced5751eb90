package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries holds the SQL for every collection. Amounts travel as text so
// NUMERIC values round-trip through decimal.Decimal without float loss.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const balanceID = "current"

const transactionColumns = `id::text, type, amount::text, description, received_from, expense_category,
	related_event, date, created_at, updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var (
		t                                    models.Transaction
		kind, amount                         string
		receivedFrom, category, relatedEvent pgtype.Text
		date                                 pgtype.Date
		createdAt, updatedAt                 time.Time
	)
	err := row.Scan(&t.ID, &kind, &amount, &t.Description, &receivedFrom, &category,
		&relatedEvent, &date, &createdAt, &updatedAt)
	if err != nil {
		return models.Transaction{}, notFound(err)
	}

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	t.Details = models.NewDetails(models.Kind(kind), receivedFrom.String, category.String)
	if relatedEvent.Valid {
		t.RelatedEvent = relatedEvent.String
	}
	t.Date = date.Time
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt
	return t, nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func dateParam(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func (q *Queries) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO transactions (id, type, amount, description, received_from, expense_category, related_event, date)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)
		RETURNING `+transactionColumns,
		uuid.New(), string(t.Kind()), t.Amount.StringFixed(2), t.Description,
		optionalText(t.ReceivedFrom()), optionalText(t.ExpenseCategory()), optionalText(t.RelatedEvent), dateParam(t.Date),
	)
	return scanTransaction(row)
}

func (q *Queries) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return models.Transaction{}, store.ErrNotFound
	}
	row := q.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, txID)
	return scanTransaction(row)
}

// getTransactionForUpdate locks the row so the balance delta is computed
// against the state being replaced.
func (q *Queries) getTransactionForUpdate(ctx context.Context, id string) (models.Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return models.Transaction{}, store.ErrNotFound
	}
	row := q.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, txID)
	return scanTransaction(row)
}

func (q *Queries) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	txID, err := uuid.Parse(t.ID)
	if err != nil {
		return models.Transaction{}, store.ErrNotFound
	}
	row := q.db.QueryRow(ctx, `
		UPDATE transactions
		SET type = $2, amount = $3::numeric, description = $4, received_from = $5,
		    expense_category = $6, related_event = $7, date = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+transactionColumns,
		txID, string(t.Kind()), t.Amount.StringFixed(2), t.Description,
		optionalText(t.ReceivedFrom()), optionalText(t.ExpenseCategory()), optionalText(t.RelatedEvent), dateParam(t.Date),
	)
	return scanTransaction(row)
}

func (q *Queries) DeleteTransaction(ctx context.Context, id string) error {
	txID, err := uuid.Parse(id)
	if err != nil {
		return store.ErrNotFound
	}
	tag, err := q.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, txID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (q *Queries) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY date DESC, created_at DESC
		LIMIT NULLIF($1, 0)`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanBalance(row pgx.Row) (models.Balance, error) {
	var (
		amount    string
		updatedAt time.Time
	)
	if err := row.Scan(&amount, &updatedAt); err != nil {
		return models.Balance{}, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Balance{}, fmt.Errorf("parse balance %q: %w", amount, err)
	}
	return models.Balance{Amount: value, UpdatedAt: updatedAt}, nil
}

func (q *Queries) AdjustBalance(ctx context.Context, delta decimal.Decimal) (models.Balance, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO treasury (id, balance, updated_at)
		VALUES ($1, $2::numeric, NOW())
		ON CONFLICT (id) DO UPDATE
		SET balance = treasury.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance::text, updated_at`,
		balanceID, delta.StringFixed(2),
	)
	b, err := scanBalance(row)
	if isNumericOverflow(err) {
		return models.Balance{}, models.ErrBalanceOutOfRange
	}
	return b, err
}

func (q *Queries) GetBalance(ctx context.Context) (models.Balance, error) {
	row := q.db.QueryRow(ctx, `SELECT balance::text, updated_at FROM treasury WHERE id = $1`, balanceID)
	b, err := scanBalance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{Amount: decimal.Zero}, nil
	}
	return b, err
}

const eventColumns = `id::text, title, description, date, status, created_at, updated_at`

func scanEvent(row pgx.Row) (models.Event, error) {
	var (
		e      models.Event
		date   pgtype.Date
		status string
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Event{}, notFound(err)
	}
	e.Date = date.Time
	e.Status = models.EventStatus(status)
	return e, nil
}

func (q *Queries) ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE $1 = '' OR status = $1
		ORDER BY date DESC, created_at DESC`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (q *Queries) GetEvent(ctx context.Context, id string) (models.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return models.Event{}, store.ErrNotFound
	}
	return scanEvent(q.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID))
}

func (q *Queries) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO events (id, title, description, date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+eventColumns,
		uuid.New(), e.Title, e.Description, dateParam(e.Date), string(e.Status),
	)
	return scanEvent(row)
}

func (q *Queries) UpdateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	eventID, err := uuid.Parse(e.ID)
	if err != nil {
		return models.Event{}, store.ErrNotFound
	}
	row := q.db.QueryRow(ctx, `
		UPDATE events
		SET title = $2, description = $3, date = $4, status = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns,
		eventID, e.Title, e.Description, dateParam(e.Date), string(e.Status),
	)
	return scanEvent(row)
}

func (q *Queries) ToggleEventStatus(ctx context.Context, id string) (models.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return models.Event{}, store.ErrNotFound
	}
	row := q.db.QueryRow(ctx, `
		UPDATE events
		SET status = CASE status WHEN 'ongoing' THEN 'upcoming' ELSE 'ongoing' END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns, eventID)
	return scanEvent(row)
}

func (q *Queries) DeleteEvent(ctx context.Context, id string) error {
	return q.deleteByID(ctx, `DELETE FROM events WHERE id = $1`, id)
}

const announcementColumns = `id::text, title, content, date, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (models.Announcement, error) {
	var (
		a    models.Announcement
		date pgtype.Date
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &date, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return models.Announcement{}, notFound(err)
	}
	a.Date = date.Time
	return a, nil
}

func (q *Queries) ListAnnouncements(ctx context.Context, limit int) ([]models.Announcement, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		ORDER BY date DESC, created_at DESC
		LIMIT NULLIF($1, 0)`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := make([]models.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (q *Queries) GetAnnouncement(ctx context.Context, id string) (models.Announcement, error) {
	announcementID, err := uuid.Parse(id)
	if err != nil {
		return models.Announcement{}, store.ErrNotFound
	}
	return scanAnnouncement(q.db.QueryRow(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, announcementID))
}

func (q *Queries) CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO announcements (id, title, content, date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+announcementColumns,
		uuid.New(), a.Title, a.Content, dateParam(a.Date),
	)
	return scanAnnouncement(row)
}

func (q *Queries) UpdateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	announcementID, err := uuid.Parse(a.ID)
	if err != nil {
		return models.Announcement{}, store.ErrNotFound
	}
	row := q.db.QueryRow(ctx, `
		UPDATE announcements
		SET title = $2, content = $3, date = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+announcementColumns,
		announcementID, a.Title, a.Content, dateParam(a.Date),
	)
	return scanAnnouncement(row)
}

func (q *Queries) DeleteAnnouncement(ctx context.Context, id string) error {
	return q.deleteByID(ctx, `DELETE FROM announcements WHERE id = $1`, id)
}

func (q *Queries) deleteByID(ctx context.Context, sql, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return store.ErrNotFound
	}
	tag, err := q.db.Exec(ctx, sql, parsed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// numericValueOutOfRange is the SQLSTATE for NUMERIC precision overflow.
const numericValueOutOfRange = "22003"

func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == numericValueOutOfRange
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
