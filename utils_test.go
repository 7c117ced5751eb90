package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleDatabaseError(t *testing.T) {
	t.Run("validation errors are bad requests with their message", func(t *testing.T) {
		err := fmt.Errorf("create: %w", &models.ValidationError{Field: "amount", Message: "Please enter a valid amount"})

		code, message := handleDatabaseError(err)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Please enter a valid amount", message)
	})

	t.Run("missing records are not found", func(t *testing.T) {
		code, message := handleDatabaseError(fmt.Errorf("get: %w", store.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Resource not found", message)
	})

	t.Run("anything else is an internal error", func(t *testing.T) {
		code, message := handleDatabaseError(errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Internal server error", message)
	})
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		query string
		limit int
		ok    bool
	}{
		{"", 0, true},
		{"?limit=10", 10, true},
		{"?limit=0", 0, true},
		{"?limit=-2", 0, false},
		{"?limit=ten", 0, false},
	}

	for _, tc := range cases {
		t.Run("limit query "+tc.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tc.query, nil)

			limit, ok := parseLimit(c)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Run("renders emphasis and tables", func(t *testing.T) {
		html := renderMarkdown("**Dues** are due\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

		assert.Contains(t, html, "<strong>Dues</strong>")
		assert.Contains(t, html, "<table>")
	})

	t.Run("omits raw HTML", func(t *testing.T) {
		html := renderMarkdown(`<img src=x onerror="alert(1)">`)

		assert.NotContains(t, html, "onerror")
	})
}
