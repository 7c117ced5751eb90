package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a treasury transaction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

const (
	maxDescriptionLength = 200
	maxPartyLength       = 100

	// maxAmountDigits is the integer digit count of an amount column.
	maxAmountDigits = 12
)

const amountTooLarge = "Amount must be less than 1,000,000,000,000"

// MaxAmount is the exclusive upper bound of a transaction amount.
var MaxAmount = decimal.New(1, maxAmountDigits)

// MaxBalance is the exclusive bound of the treasury balance in either
// direction.
var MaxBalance = decimal.New(1, 14)

// ErrBalanceOutOfRange is returned when a change would move the balance to
// MaxBalance or beyond. The change is not applied.
var ErrBalanceOutOfRange = &ValidationError{
	Field:   "amount",
	Message: "This transaction would take the balance out of range",
}

// Details is the kind-specific part of a transaction. Exactly one of
// IncomeDetails or ExpenseDetails is attached to every Transaction.
type Details interface {
	Kind() Kind
}

// IncomeDetails records who the money was received from.
type IncomeDetails struct {
	ReceivedFrom string
}

func (IncomeDetails) Kind() Kind { return Income }

// ExpenseDetails records what the money was spent on.
type ExpenseDetails struct {
	Category string
}

func (ExpenseDetails) Kind() Kind { return Expense }

// Transaction is a single income or expense record.
type Transaction struct {
	ID           string
	Amount       decimal.Decimal
	Description  string
	Details      Details
	RelatedEvent string
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Kind returns the kind implied by the transaction details.
func (t Transaction) Kind() Kind {
	if t.Details == nil {
		return ""
	}
	return t.Details.Kind()
}

// ReceivedFrom returns the income source, or "" for expenses.
func (t Transaction) ReceivedFrom() string {
	if d, ok := t.Details.(IncomeDetails); ok {
		return d.ReceivedFrom
	}
	return ""
}

// ExpenseCategory returns the expense category, or "" for income.
func (t Transaction) ExpenseCategory() string {
	if d, ok := t.Details.(ExpenseDetails); ok {
		return d.Category
	}
	return ""
}

// NewDetails builds the details variant for kind from raw fields.
func NewDetails(kind Kind, receivedFrom, expenseCategory string) Details {
	switch kind {
	case Income:
		return IncomeDetails{ReceivedFrom: receivedFrom}
	case Expense:
		return ExpenseDetails{Category: expenseCategory}
	}
	return nil
}

// TransactionInput is the admin form payload for a transaction.
type TransactionInput struct {
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReceivedFrom    string          `json:"received_from"`
	ExpenseCategory string          `json:"expense_category"`
	RelatedEvent    string          `json:"related_event"`
	Date            string          `json:"date"`
}

// Transaction validates the input and converts it to a Transaction. The
// field belonging to the other kind is dropped. An empty date means today.
func (in TransactionInput) Transaction(now time.Time) (Transaction, error) {
	kind := Kind(strings.TrimSpace(in.Type))
	if !kind.Valid() {
		return Transaction{}, invalid("type", "Transaction type must be income or expense")
	}

	if !in.Amount.IsPositive() {
		return Transaction{}, invalid("amount", "Please enter a valid amount")
	}
	// Check the magnitude before rounding, which would expand the exponent.
	magnitude := int64(in.Amount.NumDigits()) + int64(in.Amount.Exponent())
	if magnitude > maxAmountDigits {
		return Transaction{}, invalid("amount", amountTooLarge)
	}
	if magnitude < -2 {
		return Transaction{}, invalid("amount", "Please enter a valid amount")
	}
	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return Transaction{}, invalid("amount", "Please enter a valid amount")
	}
	if amount.Cmp(MaxAmount) >= 0 {
		return Transaction{}, invalid("amount", amountTooLarge)
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return Transaction{}, invalid("description", "Please enter a description")
	}
	if len([]rune(description)) > maxDescriptionLength {
		return Transaction{}, invalid("description", "Description must be at most 200 characters")
	}

	receivedFrom := strings.TrimSpace(in.ReceivedFrom)
	category := strings.TrimSpace(in.ExpenseCategory)
	switch kind {
	case Income:
		if receivedFrom == "" {
			return Transaction{}, invalid("received_from", "Please specify who the income was received from")
		}
		if len([]rune(receivedFrom)) > maxPartyLength {
			return Transaction{}, invalid("received_from", "Received from must be at most 100 characters")
		}
	case Expense:
		if category == "" {
			return Transaction{}, invalid("expense_category", "Please specify the expense category")
		}
		if len([]rune(category)) > maxPartyLength {
			return Transaction{}, invalid("expense_category", "Expense category must be at most 100 characters")
		}
	}

	date, err := parseDate(in.Date, now)
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		Amount:       amount,
		Description:  description,
		Details:      NewDetails(kind, receivedFrom, category),
		RelatedEvent: strings.TrimSpace(in.RelatedEvent),
		Date:         date,
	}, nil
}
