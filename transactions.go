package main

import (
	"net/http"

	"opentreasury/internal/models"

	"github.com/gin-gonic/gin"
)

// Transaction handler functions

// @Summary Get all transactions
// @Description Retrieve the full transaction history, newest date first
// @Tags transactions
// @Produce json
// @Success 200 {array} Transaction "List of transactions"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions [get]
func getTransactions(c *gin.Context) {
	transactions, err := dataStore.ListTransactions(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err, "Error fetching transactions")
		return
	}

	c.JSON(http.StatusOK, convertTransactions(transactions))
}

// @Summary Create transaction
// @Description Record an income or expense and adjust the treasury balance in the same write
// @Tags admin
// @Accept json
// @Produce json
// @Param transaction body models.TransactionInput true "Transaction data. received_from is required for income, expense_category for expense"
// @Success 201 {object} map[string]interface{} "message and created transaction"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 401 {object} map[string]interface{} "Not signed in"
// @Failure 403 {object} map[string]interface{} "Not an admin"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/transactions [post]
func createTransaction(c *gin.Context) {
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := ledgerService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to save transaction")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction added successfully!",
		"transaction": convertTransaction(created),
	})
}

// @Summary Update transaction
// @Description Replace a transaction. The balance moves by the difference between the new and stored signed amounts
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body models.TransactionInput true "Updated transaction data"
// @Success 200 {object} map[string]interface{} "message and updated transaction"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/transactions/{id} [put]
func updateTransaction(c *gin.Context) {
	id := c.Param("id")
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := ledgerService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "Failed to save transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully!",
		"transaction": convertTransaction(updated),
	})
}

// @Summary Delete transaction
// @Description Permanently delete a transaction and reverse its effect on the balance
// @Tags admin
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{} "Transaction deleted successfully"
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security SessionCookie
// @Router /api/admin/transactions/{id} [delete]
func deleteTransaction(c *gin.Context) {
	if err := ledgerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully!"})
}
