package launchpad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/logging"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

// Flow serves the browser-facing OAuth flow for Basecamp's Launchpad. It is
// an http.Handler meant to be mounted under a path prefix (the serve command
// mounts it at /oauth). Routes, relative to the mount:
//
//	GET  /          same as /start
//	GET  /start     redirect to Launchpad's authorization page
//	GET  /callback  exchange the authorization code, persist the token
//	GET  /status    authentication status as JSON, no token material
//	POST /logout    delete the persisted token
type Flow struct {
	config *oauth2.Config
	store  tokenstore.Store
	states *stateStore
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewFlow builds the OAuth flow from the service configuration and the token
// store the wrapper shares with the MCP tool layer.
func NewFlow(cfg *config.Config, store tokenstore.Store, logger *slog.Logger) (*Flow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("token store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := &Flow{
		config: NewConfig(cfg),
		store:  store,
		states: newStateStore(),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", f.handleRoot)
	mux.HandleFunc("/start", f.handleStart)
	mux.HandleFunc("/callback", f.handleCallback)
	mux.HandleFunc("/status", f.handleStatus)
	mux.HandleFunc("/logout", f.handleLogout)
	f.mux = mux

	return f, nil
}

// ServeHTTP implements http.Handler.
func (f *Flow) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mux.ServeHTTP(w, r)
}

// Authenticated reports whether a token is currently stored. It does not
// validate the token against Launchpad.
func (f *Flow) Authenticated(ctx context.Context) bool {
	_, err := f.store.Load(ctx)
	return err == nil
}

func (f *Flow) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "" {
		http.NotFound(w, r)
		return
	}
	f.handleStart(w, r)
}

// handleStart redirects the browser to Launchpad's authorization page with a
// fresh single-use state value.
func (f *Flow) handleStart(w http.ResponseWriter, r *http.Request) {
	if f.config.ClientID == "" || f.config.ClientSecret == "" {
		http.Error(w, "oauth client credentials are not configured (set BASECAMP_CLIENT_ID and BASECAMP_CLIENT_SECRET)", http.StatusInternalServerError)
		return
	}
	if f.config.RedirectURL == "" {
		http.Error(w, "redirect URI is not configured (set PUBLIC_BASE_URL or BASECAMP_REDIRECT_URI)", http.StatusInternalServerError)
		return
	}

	state := f.states.Issue()
	authURL := AuthCodeURL(f.config, state)

	f.logger.Info("starting oauth authorization",
		logging.Operation("oauth_start"),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleCallback finishes the flow: it verifies the state, exchanges the
// authorization code, and persists the resulting token.
func (f *Flow) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// The provider reports user denial through the error parameter. No
	// exchange is attempted in that case.
	if errCode := query.Get("error"); errCode != "" {
		f.logger.Warn("oauth authorization denied",
			logging.Operation("oauth_callback"),
			slog.String("oauth_error", errCode),
		)
		http.Error(w, fmt.Sprintf("authorization failed: %s", errCode), http.StatusBadRequest)
		return
	}

	state := query.Get("state")
	if state == "" || !f.states.Consume(state) {
		f.logger.Warn("oauth callback with invalid state",
			logging.Operation("oauth_callback"),
		)
		http.Error(w, "invalid or expired state parameter, restart the authorization at /oauth/start", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	token, err := Exchange(r.Context(), f.config, code)
	if err != nil {
		f.logger.Error("oauth code exchange failed",
			logging.Operation("oauth_callback"),
			logging.Err(err),
		)
		http.Error(w, "token exchange failed: launchpad rejected the authorization code", http.StatusBadGateway)
		return
	}

	if err := f.store.Save(r.Context(), token); err != nil {
		// Nothing was persisted, so the next MCP call would fail;
		// report the failure instead of a success page.
		f.logger.Error("failed to persist oauth token",
			logging.Operation("oauth_callback"),
			logging.Path(f.store.Path()),
			logging.Err(err),
		)
		http.Error(w, "authorization succeeded but the token could not be stored", http.StatusInternalServerError)
		return
	}

	f.logger.Info("oauth token persisted",
		logging.Operation("oauth_callback"),
		logging.Path(f.store.Path()),
		slog.String("access_token", logging.SanitizeToken(token.AccessToken)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(successPage))
}

// handleStatus reports whether a token is stored, without revealing token
// material.
func (f *Flow) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Authenticated bool   `json:"authenticated"`
		TokenPath     string `json:"token_path"`
		ExpiresAt     string `json:"expires_at,omitempty"`
	}{
		TokenPath: f.store.Path(),
	}

	token, err := f.store.Load(r.Context())
	switch {
	case err == nil:
		status.Authenticated = true
		if !token.Expiry.IsZero() {
			status.ExpiresAt = token.Expiry.Format(time.RFC3339)
		}
	case errors.Is(err, tokenstore.ErrNotFound):
		// Not authenticated yet.
	default:
		f.logger.Error("failed to read token for status",
			logging.Operation("oauth_status"),
			logging.Err(err),
		)
		http.Error(w, "failed to read token store", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

// handleLogout deletes the persisted token.
func (f *Flow) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "logout requires POST", http.StatusMethodNotAllowed)
		return
	}

	if err := f.store.Clear(r.Context()); err != nil {
		f.logger.Error("failed to clear token store",
			logging.Operation("oauth_logout"),
			logging.Err(err),
		)
		http.Error(w, "failed to clear token store", http.StatusInternalServerError)
		return
	}

	f.logger.Info("oauth token cleared",
		logging.Operation("oauth_logout"),
		logging.Path(f.store.Path()),
	)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok": true}` + "\n"))
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>Basecamp authorization complete</title></head>
<body>
<h1>Authorization complete</h1>
<p>The Basecamp token has been stored. You can close this window and start
using the MCP endpoint.</p>
</body>
</html>
`
