// Package format renders amounts and dates for display.
package format

import (
	"strings"
	"time"

	"opentreasury/internal/models"

	"github.com/shopspring/decimal"
)

const rupee = "₹"

// Currency renders amount as Indian rupees with en-IN digit grouping and
// exactly two decimals, e.g. 100000 -> ₹1,00,000.00 and -40 -> -₹40.00.
func Currency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + rupee + groupIndian(whole) + "." + frac
}

// groupIndian groups the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// TransactionAmount prefixes the absolute amount with + for income and -
// for expense.
func TransactionAmount(amount decimal.Decimal, kind models.Kind) string {
	formatted := Currency(amount.Abs())
	if kind == models.Income {
		return "+" + formatted
	}
	return "-" + formatted
}

// Date renders t as "02 Jan 2006". The zero time renders as N/A.
func Date(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02 Jan 2006")
}

// DateTime renders t as "02 Jan 2006, 03:04 PM".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02 Jan 2006, 03:04 PM")
}
