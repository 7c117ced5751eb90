// Package ledger keeps the treasury balance in step with the transaction
// history. The balance is never recomputed; every transaction write is paired
// with exactly one balance adjustment in the same store transaction.
package ledger

import (
	"opentreasury/internal/models"

	"github.com/shopspring/decimal"
)

// SignedAmount is +amount for income and -amount for expense.
func SignedAmount(kind models.Kind, amount decimal.Decimal) decimal.Decimal {
	if kind == models.Expense {
		return amount.Neg()
	}
	return amount
}

func CreateDelta(kind models.Kind, amount decimal.Decimal) decimal.Decimal {
	return SignedAmount(kind, amount)
}

// UpdateDelta reverses the old signed contribution and applies the new one.
func UpdateDelta(oldKind models.Kind, oldAmount decimal.Decimal, newKind models.Kind, newAmount decimal.Decimal) decimal.Decimal {
	return SignedAmount(newKind, newAmount).Sub(SignedAmount(oldKind, oldAmount))
}

func DeleteDelta(kind models.Kind, amount decimal.Decimal) decimal.Decimal {
	return SignedAmount(kind, amount).Neg()
}
