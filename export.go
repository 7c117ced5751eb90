package main

import (
	"fmt"
	"net/http"
	"time"

	"opentreasury/internal/format"
	"opentreasury/internal/ledger"
	"opentreasury/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transactions"

var exportHeader = []any{"Date", "Type", "Description", "Received From / Category", "Related Event", "Amount", "Signed Amount", "Formatted"}

// @Summary Export transactions
// @Description Download the full transaction history as an Excel workbook
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "XLSX workbook"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/export [get]
func exportTransactions(c *gin.Context) {
	transactions, err := dataStore.ListTransactions(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err, "Error exporting transactions")
		return
	}

	f, err := buildTransactionWorkbook(transactions)
	if err != nil {
		respondError(c, err, "Error exporting transactions")
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format(models.DateLayout))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// headers are already sent
		c.Error(err)
	}
}

func buildTransactionWorkbook(transactions []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(exportSheet, "A1", "H1", bold)
	}

	for i, t := range transactions {
		party := t.ReceivedFrom()
		if t.Kind() == models.Expense {
			party = t.ExpenseCategory()
		}
		row := []any{
			t.Date.Format(models.DateLayout),
			string(t.Kind()),
			t.Description,
			party,
			t.RelatedEvent,
			t.Amount.InexactFloat64(),
			ledger.SignedAmount(t.Kind(), t.Amount).InexactFloat64(),
			format.TransactionAmount(t.Amount, t.Kind()),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetColWidth(exportSheet, "A", "A", 12)
	f.SetColWidth(exportSheet, "C", "E", 30)
	return f, nil
}
