package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"opentreasury/internal/auth"
	"opentreasury/internal/ledger"
	"opentreasury/internal/live"
	"opentreasury/internal/store"
	"opentreasury/internal/store/memory"

	"github.com/gin-gonic/gin"
)

const (
	adminCredential   = "admin-credential"
	visitorCredential = "visitor-credential"
)

var (
	testStore    *memory.Store
	testSessions *auth.Sessions
	testRouter   *gin.Engine
	testCancel   context.CancelFunc
)

// fakeProvider stands in for Google sign-in
type fakeProvider struct{}

func (fakeProvider) SignIn(ctx context.Context, credential string) (auth.Identity, error) {
	switch credential {
	case adminCredential:
		return auth.Identity{Subject: "1", Email: "treasurer@example.org", Name: "Treasurer"}, nil
	case visitorCredential:
		return auth.Identity{Subject: "2", Email: "visitor@example.org"}, nil
	}
	return auth.Identity{}, auth.ErrInvalidCredential
}

func (fakeProvider) SignOut(ctx context.Context, id auth.Identity) error {
	return nil
}

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	testRouter = setupRouter(gin.New(), []string{"http://localhost:5173"})
	if err := cleanupTestData(); err != nil {
		panic(err)
	}

	code := m.Run()
	testCancel()
	os.Exit(code)
}

// cleanupTestData swaps in a fresh store, session store and hub
func cleanupTestData() error {
	if testCancel != nil {
		testCancel()
	}
	var ctx context.Context
	ctx, testCancel = context.WithCancel(context.Background())

	testStore = memory.New()
	dataStore = testStore
	ledgerService = ledger.NewService(testStore)
	testSessions = auth.NewSessions([]byte("test-secret"), time.Hour, auth.NewMemorySessionStore())
	gate = auth.NewGate(fakeProvider{}, auth.ParseAllowList("Treasurer@Example.org"), testSessions)
	cookieSecure = false

	hub = live.NewHub()
	registerLiveQueries(hub, testStore)
	go live.Follow(ctx, testStore, hub, store.Collections, live.DefaultBackoff)
	serverContext = ctx
	return nil
}

// makeRequest helper function for making HTTP requests
func makeRequest(method, url string, body io.Reader) *httptest.ResponseRecorder {
	return makeAuthedRequest(method, url, body, "")
}

// makeAuthedRequest sends the request with a bearer session token
func makeAuthedRequest(method, url string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	testRouter.ServeHTTP(recorder, req)

	return recorder
}

// makeCookieRequest sends a JSON body with the session cookie instead of a bearer token
func makeCookieRequest(t *testing.T, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, jsonBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})

	recorder := httptest.NewRecorder()
	testRouter.ServeHTTP(recorder, req)

	return recorder
}

// issueSession mints a session for id without going through the allow-list
func issueSession(t *testing.T, id auth.Identity) string {
	t.Helper()
	token, err := testSessions.Issue(context.Background(), id)
	assertNoError(t, err)
	return token
}

// jsonBody marshals v for a request body
func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	assertNoError(t, err)
	return bytes.NewBuffer(body)
}

// loginAsAdmin signs in with the allow-listed identity and returns the token
func loginAsAdmin(t *testing.T) string {
	t.Helper()
	resp := makeRequest("POST", "/api/auth/login", jsonBody(t, map[string]string{"credential": adminCredential}))
	assertStatusCode(t, 200, resp.Code)

	var body struct {
		Token string `json:"token"`
	}
	assertNoError(t, parseJSONResponse(resp, &body))
	if body.Token == "" {
		t.Fatal("Expected a session token")
	}
	return body.Token
}

// parseJSONResponse helper function to parse JSON response
func parseJSONResponse(recorder *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(recorder.Body.Bytes(), target)
}

// assertStatusCode helper function to assert HTTP status code
func assertStatusCode(t *testing.T, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected status code %d, got %d", expected, actual)
	}
}

// assertNoError helper function to assert no error occurred
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
