package main

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"opentreasury/internal/models"
	"opentreasury/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// handleDatabaseError converts store and validation errors to HTTP responses
func handleDatabaseError(err error) (statusCode int, message string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}

	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, "Resource not found"
	}

	return http.StatusInternalServerError, "Internal server error"
}

// respondError logs server-side failures and writes the error toast. fallback
// replaces the generic message for 500s.
func respondError(c *gin.Context, err error, fallback string) {
	statusCode, message := handleDatabaseError(err)
	if statusCode == http.StatusInternalServerError {
		slog.Error(fallback, "error", err, "path", c.FullPath())
		message = fallback
	}
	c.JSON(statusCode, gin.H{"error": message})
}

// parseLimit reads an optional positive ?limit= value. 0 means no limit.
func parseLimit(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown renders announcement content. Raw HTML in the source is
// omitted by the renderer.
func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("Failed to render markdown", "error", err)
		return ""
	}
	return buf.String()
}
