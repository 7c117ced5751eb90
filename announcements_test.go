package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncements(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}
	token := loginAsAdmin(t)

	t.Run("should render markdown and escape raw HTML", func(t *testing.T) {
		resp := makeAuthedRequest("POST", "/api/admin/announcements", jsonBody(t, map[string]interface{}{
			"title": "AGM", "content": "Meeting on **Friday**\n\n<script>alert(1)</script>", "date": "2026-03-01",
		}), token)
		assertStatusCode(t, http.StatusCreated, resp.Code)

		var body struct {
			Message      string       `json:"message"`
			Announcement Announcement `json:"announcement"`
		}
		require.NoError(t, parseJSONResponse(resp, &body))
		assert.Equal(t, "Announcement added successfully!", body.Message)
		assert.Contains(t, body.Announcement.ContentHTML, "<strong>Friday</strong>")
		assert.NotContains(t, body.Announcement.ContentHTML, "<script>")
	})

	t.Run("should honour the limit parameter", func(t *testing.T) {
		for i := 2; i <= 12; i++ {
			resp := makeAuthedRequest("POST", "/api/admin/announcements", jsonBody(t, map[string]interface{}{
				"title": fmt.Sprintf("Notice %d", i), "content": "c", "date": fmt.Sprintf("2026-03-%02d", i),
			}), token)
			require.Equal(t, http.StatusCreated, resp.Code)
		}

		resp := makeRequest("GET", "/api/announcements?limit=10", nil)
		assertStatusCode(t, http.StatusOK, resp.Code)
		var latest []Announcement
		require.NoError(t, parseJSONResponse(resp, &latest))
		require.Len(t, latest, 10)
		assert.Equal(t, "Notice 12", latest[0].Title)

		resp = makeRequest("GET", "/api/announcements", nil)
		var all []Announcement
		require.NoError(t, parseJSONResponse(resp, &all))
		assert.Len(t, all, 12)

		resp = makeRequest("GET", "/api/announcements?limit=-1", nil)
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should update and delete", func(t *testing.T) {
		resp := makeRequest("GET", "/api/announcements?limit=1", nil)
		var latest []Announcement
		require.NoError(t, parseJSONResponse(resp, &latest))
		require.Len(t, latest, 1)
		id := latest[0].ID

		resp = makeAuthedRequest("PUT", "/api/admin/announcements/"+id, jsonBody(t, map[string]interface{}{
			"title": "Edited", "content": "c", "date": "2026-03-12",
		}), token)
		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Announcement updated successfully!")

		resp = makeAuthedRequest("DELETE", "/api/admin/announcements/"+id, nil, token)
		assertStatusCode(t, http.StatusOK, resp.Code)

		resp = makeAuthedRequest("DELETE", "/api/admin/announcements/"+id, nil, token)
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}
