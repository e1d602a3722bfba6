package launchpad

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.RedirectURI = "https://wrapper.example.com/oauth/callback"
	return cfg
}

func newTestFlow(t *testing.T) (*Flow, tokenstore.Store) {
	t.Helper()
	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "oauth_tokens.json"))
	flow, err := NewFlow(testConfig(), store, discardLogger())
	require.NoError(t, err)
	return flow, store
}

// fakeLaunchpad stands in for the Launchpad token endpoint. It records the
// exchange form and returns a fixed token.
func fakeLaunchpad(t *testing.T, status int) (*httptest.Server, *url.Values) {
	t.Helper()
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error": "invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"access_token": "fresh-access",
			"token_type": "Bearer",
			"refresh_token": "fresh-refresh",
			"expires_in": 1209600
		}`))
	}))
	t.Cleanup(server.Close)
	return server, &form
}

func TestNewFlowValidation(t *testing.T) {
	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "t.json"))

	_, err := NewFlow(nil, store, nil)
	assert.Error(t, err)

	_, err = NewFlow(testConfig(), nil, nil)
	assert.Error(t, err)

	flow, err := NewFlow(testConfig(), store, nil)
	require.NoError(t, err)
	assert.NotNil(t, flow)
}

func TestStartRedirectsToLaunchpad(t *testing.T) {
	flow, _ := newTestFlow(t)

	for _, path := range []string{"/start", "/"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusFound, rec.Code)

			location, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)

			assert.Equal(t, "launchpad.37signals.com", location.Host)
			assert.Equal(t, "/authorization/new", location.Path)

			query := location.Query()
			assert.Equal(t, "web_server", query.Get("type"))
			assert.Equal(t, "client-id", query.Get("client_id"))
			assert.Equal(t, "https://wrapper.example.com/oauth/callback", query.Get("redirect_uri"))
			assert.NotEmpty(t, query.Get("state"))
		})
	}
}

func TestStartWithoutCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.RedirectURI = "https://wrapper.example.com/oauth/callback"
	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "t.json"))
	flow, err := NewFlow(cfg, store, discardLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/start", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "BASECAMP_CLIENT_ID")
}

func TestStartWithoutRedirectURI(t *testing.T) {
	cfg := config.Default()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "t.json"))
	flow, err := NewFlow(cfg, store, discardLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/start", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "PUBLIC_BASE_URL")
}

func TestUnknownPath(t *testing.T) {
	flow, _ := newTestFlow(t)

	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// startAndExtractState runs /start and pulls the issued state out of the
// redirect so callback tests can present a valid one.
func startAndExtractState(t *testing.T, flow *Flow) string {
	t.Helper()
	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/start", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestCallbackSuccess(t *testing.T) {
	flow, store := newTestFlow(t)
	server, form := fakeLaunchpad(t, http.StatusOK)
	flow.config.Endpoint.TokenURL = server.URL

	state := startAndExtractState(t, flow)

	rec := httptest.NewRecorder()
	target := fmt.Sprintf("/callback?code=auth-code&state=%s", state)
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Authorization complete")

	// Launchpad requires the web_server grant type on the exchange too.
	assert.Equal(t, "web_server", form.Get("type"))
	assert.Equal(t, "auth-code", form.Get("code"))

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", token.AccessToken)
	assert.Equal(t, "fresh-refresh", token.RefreshToken)
}

func TestCallbackStateReplay(t *testing.T) {
	flow, _ := newTestFlow(t)
	server, _ := fakeLaunchpad(t, http.StatusOK)
	flow.config.Endpoint.TokenURL = server.URL

	state := startAndExtractState(t, flow)
	target := fmt.Sprintf("/callback?code=auth-code&state=%s", state)

	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The same state again must fail.
	rec = httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallbackInvalidState(t *testing.T) {
	flow, _ := newTestFlow(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing state", "/callback?code=auth-code"},
		{"unknown state", "/callback?code=auth-code&state=forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "state")
		})
	}
}

func TestCallbackUserDenied(t *testing.T) {
	flow, _ := newTestFlow(t)
	server, form := fakeLaunchpad(t, http.StatusOK)
	flow.config.Endpoint.TokenURL = server.URL

	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?error=access_denied", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_denied")
	assert.Empty(t, *form, "no exchange may be attempted after a denial")
}

func TestCallbackMissingCode(t *testing.T) {
	flow, _ := newTestFlow(t)
	state := startAndExtractState(t, flow)

	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state="+state, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "code")
}

func TestCallbackExchangeFailure(t *testing.T) {
	flow, store := newTestFlow(t)
	server, _ := fakeLaunchpad(t, http.StatusBadRequest)
	flow.config.Endpoint.TokenURL = server.URL

	state := startAndExtractState(t, flow)

	rec := httptest.NewRecorder()
	target := fmt.Sprintf("/callback?code=bad-code&state=%s", state)
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "client-secret")

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, tokenstore.ErrNotFound, "nothing may be persisted on a failed exchange")
}

func TestCallbackPersistFailure(t *testing.T) {
	failing := &failingStore{saveErr: fmt.Errorf("disk full")}
	flow, err := NewFlow(testConfig(), failing, discardLogger())
	require.NoError(t, err)

	server, _ := fakeLaunchpad(t, http.StatusOK)
	flow.config.Endpoint.TokenURL = server.URL

	state := startAndExtractState(t, flow)

	rec := httptest.NewRecorder()
	target := fmt.Sprintf("/callback?code=auth-code&state=%s", state)
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be stored")
}

func TestStatus(t *testing.T) {
	flow, store := newTestFlow(t)

	var status struct {
		Authenticated bool   `json:"authenticated"`
		TokenPath     string `json:"token_path"`
		ExpiresAt     string `json:"expires_at"`
	}

	// Before authentication.
	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))

	assert.False(t, status.Authenticated)
	assert.Equal(t, store.Path(), status.TokenPath)
	assert.Empty(t, status.ExpiresAt)
	assert.NotContains(t, rec.Body.String(), "access_token")

	// After a token is stored.
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, store.Save(context.Background(), &oauth2.Token{
		AccessToken:  "secret-access",
		RefreshToken: "secret-refresh",
		Expiry:       expiry,
	}))

	rec = httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))

	assert.True(t, status.Authenticated)
	assert.Equal(t, expiry.Format(time.RFC3339), status.ExpiresAt)
	assert.NotContains(t, rec.Body.String(), "secret-access")
	assert.NotContains(t, rec.Body.String(), "secret-refresh")
}

func TestLogout(t *testing.T) {
	flow, store := newTestFlow(t)
	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a", RefreshToken: "r"}))

	// GET is rejected.
	rec := httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	_, err := store.Load(context.Background())
	require.NoError(t, err, "rejected logout must not clear the token")

	// POST clears the token.
	rec = httptest.NewRecorder()
	flow.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)
}

// failingStore implements tokenstore.Store with injectable failures.
type failingStore struct {
	saveErr error
	token   *oauth2.Token
}

func (s *failingStore) Load(ctx context.Context) (*oauth2.Token, error) {
	if s.token == nil {
		return nil, tokenstore.ErrNotFound
	}
	return s.token, nil
}

func (s *failingStore) Save(ctx context.Context, token *oauth2.Token) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *failingStore) Clear(ctx context.Context) error {
	s.token = nil
	return nil
}

func (s *failingStore) Path() string { return "/dev/null/tokens.json" }
