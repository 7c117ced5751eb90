package main

import (
	"time"

	"opentreasury/internal/format"
	"opentreasury/internal/models"

	"github.com/shopspring/decimal"
)

// Transaction is the API representation of a treasury transaction
type Transaction struct {
	ID              string          `json:"id"`
	Type            models.Kind     `json:"type" swaggertype:"string" enums:"income,expense"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	FormattedAmount string          `json:"formatted_amount" example:"+₹1,500.00"`
	Description     string          `json:"description"`
	ReceivedFrom    *string         `json:"received_from,omitempty"`
	ExpenseCategory *string         `json:"expense_category,omitempty"`
	RelatedEvent    *string         `json:"related_event,omitempty"`
	Date            string          `json:"date" example:"2026-03-01"`
	FormattedDate   string          `json:"formatted_date" example:"01 Mar 2026"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Event represents an organization event
type Event struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Date          string             `json:"date" example:"2026-03-01"`
	FormattedDate string             `json:"formatted_date" example:"01 Mar 2026"`
	Status        models.EventStatus `json:"status" swaggertype:"string" enums:"ongoing,upcoming"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Announcement carries markdown content plus its rendered HTML
type Announcement struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	Date          string    `json:"date" example:"2026-03-01"`
	FormattedDate string    `json:"formatted_date" example:"01 Mar 2026"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Balance is the current treasury balance
type Balance struct {
	Amount             decimal.Decimal `json:"amount" swaggertype:"string" example:"100000.00"`
	Formatted          string          `json:"formatted" example:"₹1,00,000.00"`
	UpdatedAt          *time.Time      `json:"updated_at"`
	FormattedUpdatedAt string          `json:"formatted_updated_at" example:"01 Mar 2026, 03:04 PM"`
}

// Overview is everything the public page shows at once
type Overview struct {
	Balance        Balance        `json:"balance"`
	OngoingEvents  []Event        `json:"ongoing_events"`
	UpcomingEvents []Event        `json:"upcoming_events"`
	Announcements  []Announcement `json:"announcements"`
}

// Total is the sum of transactions for one source or category
type Total struct {
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	Formatted string          `json:"formatted"`
}

// Totals splits the history into income by source and expense by category
type Totals struct {
	Income            decimal.Decimal `json:"income" swaggertype:"string"`
	Expense           decimal.Decimal `json:"expense" swaggertype:"string"`
	IncomeBySource    []Total         `json:"income_by_source"`
	ExpenseByCategory []Total         `json:"expense_by_category"`
}

// LoginRequest carries the identity provider credential from the popup sign-in
type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func convertTransaction(t models.Transaction) Transaction {
	return Transaction{
		ID:              t.ID,
		Type:            t.Kind(),
		Amount:          t.Amount,
		FormattedAmount: format.TransactionAmount(t.Amount, t.Kind()),
		Description:     t.Description,
		ReceivedFrom:    optionalString(t.ReceivedFrom()),
		ExpenseCategory: optionalString(t.ExpenseCategory()),
		RelatedEvent:    optionalString(t.RelatedEvent),
		Date:            t.Date.Format(models.DateLayout),
		FormattedDate:   format.Date(t.Date),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func convertTransactions(ts []models.Transaction) []Transaction {
	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, convertTransaction(t))
	}
	return out
}

func convertEvent(e models.Event) Event {
	return Event{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Date:          e.Date.Format(models.DateLayout),
		FormattedDate: format.Date(e.Date),
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func convertEvents(es []models.Event) []Event {
	out := make([]Event, 0, len(es))
	for _, e := range es {
		out = append(out, convertEvent(e))
	}
	return out
}

func convertAnnouncement(a models.Announcement) Announcement {
	return Announcement{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		ContentHTML:   renderMarkdown(a.Content),
		Date:          a.Date.Format(models.DateLayout),
		FormattedDate: format.Date(a.Date),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func convertAnnouncements(as []models.Announcement) []Announcement {
	out := make([]Announcement, 0, len(as))
	for _, a := range as {
		out = append(out, convertAnnouncement(a))
	}
	return out
}

func convertBalance(b models.Balance) Balance {
	out := Balance{
		Amount:             b.Amount,
		Formatted:          format.Currency(b.Amount),
		FormattedUpdatedAt: format.DateTime(b.UpdatedAt),
	}
	if !b.UpdatedAt.IsZero() {
		updatedAt := b.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}
