package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionResponse struct {
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}

func createTestTransaction(t *testing.T, token string, input map[string]interface{}) Transaction {
	t.Helper()
	resp := makeAuthedRequest("POST", "/api/admin/transactions", jsonBody(t, input), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body transactionResponse
	require.NoError(t, parseJSONResponse(resp, &body))
	return body.Transaction
}

func currentBalance(t *testing.T) Balance {
	t.Helper()
	resp := makeRequest("GET", "/api/balance", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var balance Balance
	require.NoError(t, parseJSONResponse(resp, &balance))
	return balance
}

func TestGetTransactions(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}
	token := loginAsAdmin(t)

	t.Run("should return empty list when no transactions exist", func(t *testing.T) {
		resp := makeRequest("GET", "/api/transactions", nil)

		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, "[]", resp.Body.String())
	})

	t.Run("should list newest date first with formatted fields", func(t *testing.T) {
		createTestTransaction(t, token, map[string]interface{}{
			"type": "income", "amount": 100000, "description": "Annual dues",
			"received_from": "Members", "date": "2026-01-10",
		})
		createTestTransaction(t, token, map[string]interface{}{
			"type": "expense", "amount": "250", "description": "Printing",
			"expense_category": "Stationery", "related_event": "AGM", "date": "2026-02-01",
		})

		resp := makeRequest("GET", "/api/transactions", nil)
		assertStatusCode(t, http.StatusOK, resp.Code)

		var transactions []Transaction
		require.NoError(t, parseJSONResponse(resp, &transactions))
		require.Len(t, transactions, 2)

		assert.Equal(t, "2026-02-01", transactions[0].Date)
		assert.Equal(t, "-₹250.00", transactions[0].FormattedAmount)
		assert.Equal(t, "01 Feb 2026", transactions[0].FormattedDate)
		require.NotNil(t, transactions[0].ExpenseCategory)
		assert.Equal(t, "Stationery", *transactions[0].ExpenseCategory)
		assert.Nil(t, transactions[0].ReceivedFrom)
		require.NotNil(t, transactions[0].RelatedEvent)
		assert.Equal(t, "AGM", *transactions[0].RelatedEvent)

		assert.Equal(t, "+₹1,00,000.00", transactions[1].FormattedAmount)
		assert.Nil(t, transactions[1].RelatedEvent)
	})
}

func TestCreateTransaction(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}
	token := loginAsAdmin(t)

	t.Run("should reject unauthenticated requests", func(t *testing.T) {
		resp := makeRequest("POST", "/api/admin/transactions", jsonBody(t, map[string]interface{}{
			"type": "income", "amount": 10, "description": "x", "received_from": "y",
		}))

		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
		all, err := testStore.ListTransactions(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("should create income and raise the balance", func(t *testing.T) {
		resp := makeAuthedRequest("POST", "/api/admin/transactions", jsonBody(t, map[string]interface{}{
			"type": "income", "amount": "500.50", "description": "Donation",
			"received_from": "Alice", "expense_category": "should be dropped",
		}), token)

		assertStatusCode(t, http.StatusCreated, resp.Code)
		var body transactionResponse
		require.NoError(t, parseJSONResponse(resp, &body))
		assert.Equal(t, "Transaction added successfully!", body.Message)
		assert.NotEmpty(t, body.Transaction.ID)
		assert.Nil(t, body.Transaction.ExpenseCategory)

		assert.Equal(t, "₹500.50", currentBalance(t).Formatted)
	})

	t.Run("should create expense and lower the balance", func(t *testing.T) {
		createTestTransaction(t, token, map[string]interface{}{
			"type": "expense", "amount": 600, "description": "Venue", "expense_category": "Rent",
		})

		balance := currentBalance(t)
		assert.Equal(t, "-99.5", balance.Amount.String())
		assert.Equal(t, "-₹99.50", balance.Formatted)
	})
}

func TestUpdateTransaction(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}
	token := loginAsAdmin(t)

	t.Run("should move the balance by -140 when income 100 becomes expense 40", func(t *testing.T) {
		created := createTestTransaction(t, token, map[string]interface{}{
			"type": "income", "amount": 100, "description": "Dues", "received_from": "Bob",
		})
		before := currentBalance(t).Amount

		resp := makeAuthedRequest("PUT", "/api/admin/transactions/"+created.ID, jsonBody(t, map[string]interface{}{
			"type": "expense", "amount": 40, "description": "Dues", "expense_category": "Refund",
		}), token)

		assertStatusCode(t, http.StatusOK, resp.Code)
		var body transactionResponse
		require.NoError(t, parseJSONResponse(resp, &body))
		assert.Equal(t, "Transaction updated successfully!", body.Message)
		assert.Nil(t, body.Transaction.ReceivedFrom)

		delta := currentBalance(t).Amount.Sub(before)
		assert.Equal(t, "-140", delta.String())
	})

	t.Run("should return 404 for unknown transactions", func(t *testing.T) {
		resp := makeAuthedRequest("PUT", "/api/admin/transactions/does-not-exist", jsonBody(t, map[string]interface{}{
			"type": "income", "amount": 1, "description": "x", "received_from": "y",
		}), token)

		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

func TestDeleteTransaction(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}
	token := loginAsAdmin(t)

	t.Run("should reverse income 250 on delete", func(t *testing.T) {
		created := createTestTransaction(t, token, map[string]interface{}{
			"type": "income", "amount": 250, "description": "Grant", "received_from": "Council",
		})
		before := currentBalance(t).Amount

		resp := makeAuthedRequest("DELETE", "/api/admin/transactions/"+created.ID, nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.Equal(t, "-250", currentBalance(t).Amount.Sub(before).String())

		resp = makeRequest("GET", "/api/transactions", nil)
		assert.JSONEq(t, "[]", resp.Body.String())
	})

	t.Run("should return 404 when deleting twice", func(t *testing.T) {
		created := createTestTransaction(t, token, map[string]interface{}{
			"type": "expense", "amount": 5, "description": "Tea", "expense_category": "Refreshments",
		})

		resp := makeAuthedRequest("DELETE", "/api/admin/transactions/"+created.ID, nil, token)
		assertStatusCode(t, http.StatusOK, resp.Code)

		resp = makeAuthedRequest("DELETE", "/api/admin/transactions/"+created.ID, nil, token)
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}
