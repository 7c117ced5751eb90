package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"opentreasury/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should set a session cookie for an allow-listed email", func(t *testing.T) {
		resp := makeRequest("POST", "/api/auth/login", jsonBody(t, map[string]string{"credential": adminCredential}))

		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Successfully logged in!")
		cookies := resp.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, sessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("should reject an email outside the allow-list without a session", func(t *testing.T) {
		resp := makeRequest("POST", "/api/auth/login", jsonBody(t, map[string]string{"credential": visitorCredential}))

		assertStatusCode(t, http.StatusForbidden, resp.Code)
		var body map[string]interface{}
		require.NoError(t, parseJSONResponse(resp, &body))
		assert.Equal(t, "Unauthorized: You do not have admin access.", body["error"])
		assert.Nil(t, body["token"])
		assert.Empty(t, resp.Result().Cookies())
	})

	t.Run("should return 401 for a bad credential", func(t *testing.T) {
		resp := makeRequest("POST", "/api/auth/login", jsonBody(t, map[string]string{"credential": "forged"}))
		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("should return 400 without a credential", func(t *testing.T) {
		resp := makeRequest("POST", "/api/auth/login", jsonBody(t, map[string]string{}))
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

func TestSession(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should be anonymous without a session", func(t *testing.T) {
		resp := makeRequest("GET", "/api/auth/session", nil)

		assertStatusCode(t, http.StatusOK, resp.Code)
		var state auth.State
		require.NoError(t, parseJSONResponse(resp, &state))
		assert.Equal(t, auth.StatusAnonymous, state.Status)
		assert.False(t, state.IsAdmin)
		assert.Nil(t, state.Identity)
	})

	t.Run("should report admin after login and anonymous after logout", func(t *testing.T) {
		token := loginAsAdmin(t)

		resp := makeAuthedRequest("GET", "/api/auth/session", nil, token)
		var state auth.State
		require.NoError(t, parseJSONResponse(resp, &state))
		assert.Equal(t, auth.StatusAdmin, state.Status)
		assert.True(t, state.IsAdmin)
		require.NotNil(t, state.Identity)
		assert.Equal(t, "treasurer@example.org", state.Identity.Email)

		resp = makeAuthedRequest("POST", "/api/auth/logout", nil, token)
		assertStatusCode(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Successfully logged out")

		resp = makeAuthedRequest("GET", "/api/auth/session", nil, token)
		require.NoError(t, parseJSONResponse(resp, &state))
		assert.Equal(t, auth.StatusAnonymous, state.Status)

		resp = makeAuthedRequest("DELETE", "/api/admin/events/any", nil, token)
		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}

	t.Run("should forbid a valid session that is not allow-listed", func(t *testing.T) {
		token := issueSession(t, auth.Identity{Subject: "2", Email: "visitor@example.org"})

		resp := makeAuthedRequest("POST", "/api/admin/events", jsonBody(t, map[string]interface{}{
			"title": "x", "description": "y",
		}), token)

		assertStatusCode(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), "Unauthorized: You do not have admin access.")
	})

	t.Run("should accept the session cookie", func(t *testing.T) {
		token := loginAsAdmin(t)
		req := makeCookieRequest(t, "POST", "/api/admin/events", map[string]interface{}{
			"title": "Cookie", "description": "auth",
		}, token)

		assertStatusCode(t, http.StatusCreated, req.Code)
	})

	t.Run("should fall back to the bearer token when the cookie is stale", func(t *testing.T) {
		stale := loginAsAdmin(t)
		resp := makeAuthedRequest("POST", "/api/auth/logout", nil, stale)
		assertStatusCode(t, http.StatusOK, resp.Code)
		token := loginAsAdmin(t)

		req := httptest.NewRequest("POST", "/api/admin/events", jsonBody(t, map[string]interface{}{
			"title": "Both", "description": "cookie and header",
		}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: stale})
		recorder := httptest.NewRecorder()
		testRouter.ServeHTTP(recorder, req)

		assertStatusCode(t, http.StatusCreated, recorder.Code)
	})

	t.Run("should prefer a valid cookie over the bearer token", func(t *testing.T) {
		token := loginAsAdmin(t)

		req := httptest.NewRequest("GET", "/api/auth/session", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
		recorder := httptest.NewRecorder()
		testRouter.ServeHTTP(recorder, req)

		var state auth.State
		require.NoError(t, parseJSONResponse(recorder, &state))
		assert.Equal(t, auth.StatusAdmin, state.Status)
	})
}
