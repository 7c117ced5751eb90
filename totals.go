package main

import (
	"net/http"
	"sort"

	"opentreasury/internal/format"
	"opentreasury/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Totals handler functions

// @Summary Get totals
// @Description Income grouped by source and expense grouped by category across the full history
// @Tags balance
// @Produce json
// @Success 200 {object} Totals "Totals"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/totals [get]
func getTotals(c *gin.Context) {
	transactions, err := dataStore.ListTransactions(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err, "Error calculating totals")
		return
	}

	c.JSON(http.StatusOK, calculateTotals(transactions))
}

func calculateTotals(transactions []models.Transaction) Totals {
	income := map[string]decimal.Decimal{}
	expense := map[string]decimal.Decimal{}
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}

	for _, t := range transactions {
		switch d := t.Details.(type) {
		case models.IncomeDetails:
			income[d.ReceivedFrom] = income[d.ReceivedFrom].Add(t.Amount)
			totals.Income = totals.Income.Add(t.Amount)
		case models.ExpenseDetails:
			expense[d.Category] = expense[d.Category].Add(t.Amount)
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}

	totals.IncomeBySource = sortedTotals(income)
	totals.ExpenseByCategory = sortedTotals(expense)
	return totals
}

// sortedTotals orders groups by total descending, then by name.
func sortedTotals(groups map[string]decimal.Decimal) []Total {
	out := make([]Total, 0, len(groups))
	for name, total := range groups {
		out = append(out, Total{Name: name, Total: total, Formatted: format.Currency(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Total.Cmp(out[j].Total); cmp != 0 {
			return cmp > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
