package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/basecamp"
	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/launchpad"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		AccountID:     "999999",
		PublicBaseURL: "https://basecamp-mcp.example.com",
		TokenDir:      t.TempDir(),
	}
	cfg.ApplyDefaults()
	return cfg
}

func newTestContext(t *testing.T, cfg *config.Config) (*ServerContext, tokenstore.Store) {
	t.Helper()
	store := tokenstore.NewFileStore(filepath.Join(cfg.TokenDir, cfg.TokenFilename))
	flow, err := launchpad.NewFlow(cfg, store, discardLogger())
	if err != nil {
		t.Fatalf("NewFlow() error = %v", err)
	}
	sc, err := NewServerContext(context.Background(), cfg, flow, discardLogger())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	return sc, store
}

func saveTestToken(t *testing.T, store tokenstore.Store) {
	t.Helper()
	err := store.Save(context.Background(), &oauth2.Token{
		AccessToken:  "test-access",
		RefreshToken: "test-refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestNewServerContext_Validation(t *testing.T) {
	cfg := testConfig(t)
	store := tokenstore.NewFileStore(filepath.Join(cfg.TokenDir, cfg.TokenFilename))
	flow, err := launchpad.NewFlow(cfg, store, discardLogger())
	if err != nil {
		t.Fatalf("NewFlow() error = %v", err)
	}

	if _, err := NewServerContext(context.Background(), nil, flow, discardLogger()); err == nil {
		t.Error("NewServerContext() with nil config expected error, got nil")
	}
	if _, err := NewServerContext(context.Background(), cfg, nil, discardLogger()); err == nil {
		t.Error("NewServerContext() with nil flow expected error, got nil")
	}
}

func TestServerContext_BasecampClient_NoAccountID(t *testing.T) {
	cfg := testConfig(t)
	cfg.AccountID = ""
	sc, _ := newTestContext(t, cfg)

	_, err := sc.BasecampClient(context.Background())
	if err == nil {
		t.Fatal("BasecampClient() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "BASECAMP_ACCOUNT_ID") {
		t.Errorf("BasecampClient() error = %v, want mention of BASECAMP_ACCOUNT_ID", err)
	}
}

func TestServerContext_BasecampClient_NotAuthenticated(t *testing.T) {
	sc, _ := newTestContext(t, testConfig(t))

	_, err := sc.BasecampClient(context.Background())
	if err == nil {
		t.Fatal("BasecampClient() expected error, got nil")
	}
	if !errors.Is(err, tokenstore.ErrNotFound) {
		t.Errorf("BasecampClient() error = %v, want wrapped tokenstore.ErrNotFound", err)
	}
	// The error is surfaced to MCP clients, so it has to tell the operator
	// where to authorize.
	if !strings.Contains(err.Error(), "/oauth/start") {
		t.Errorf("BasecampClient() error = %v, want mention of /oauth/start", err)
	}
}

func TestServerContext_BasecampClient_CachesClient(t *testing.T) {
	sc, store := newTestContext(t, testConfig(t))
	saveTestToken(t, store)

	first, err := sc.BasecampClient(context.Background())
	if err != nil {
		t.Fatalf("BasecampClient() error = %v", err)
	}
	if first == nil {
		t.Fatal("BasecampClient() returned nil client")
	}

	second, err := sc.BasecampClient(context.Background())
	if err != nil {
		t.Fatalf("BasecampClient() second call error = %v", err)
	}
	if first != second {
		t.Error("BasecampClient() did not return the cached client")
	}
}

func TestServerContext_ResetBasecampClient(t *testing.T) {
	sc, _ := newTestContext(t, testConfig(t))

	sentinel := &basecamp.Client{}
	sc.SetBasecampClient(sentinel)

	got, err := sc.BasecampClient(context.Background())
	if err != nil {
		t.Fatalf("BasecampClient() error = %v", err)
	}
	if got != sentinel {
		t.Error("BasecampClient() did not return the injected client")
	}

	// After a reset the cache is gone; with no stored token the rebuild
	// must fail.
	sc.ResetBasecampClient()
	if _, err := sc.BasecampClient(context.Background()); err == nil {
		t.Error("BasecampClient() after reset expected error, got nil")
	}
}

func TestServerContext_BasecampClient_AfterShutdown(t *testing.T) {
	sc, store := newTestContext(t, testConfig(t))
	saveTestToken(t, store)

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	_, err := sc.BasecampClient(context.Background())
	if err == nil {
		t.Fatal("BasecampClient() after shutdown expected error, got nil")
	}
	if !strings.Contains(err.Error(), "shutting down") {
		t.Errorf("BasecampClient() error = %v, want mention of shutting down", err)
	}
}

func TestServerContext_ReadOnly(t *testing.T) {
	sc, _ := newTestContext(t, testConfig(t))

	if sc.ReadOnly() {
		t.Error("ReadOnly() = true by default, want false")
	}
	sc.SetReadOnly(true)
	if !sc.ReadOnly() {
		t.Error("ReadOnly() = false after SetReadOnly(true)")
	}
}

func TestServerContext_MetricsAndAuditLogger(t *testing.T) {
	sc, _ := newTestContext(t, testConfig(t))

	if sc.Metrics() != nil {
		t.Error("Metrics() non-nil by default")
	}
	if sc.AuditLogger() != nil {
		t.Error("AuditLogger() non-nil by default")
	}

	m := createTestProvider(t).Metrics()
	sc.SetMetrics(m)
	if sc.Metrics() != m {
		t.Error("Metrics() did not return the configured recorder")
	}
}

func TestServerContext_Shutdown_Idempotent(t *testing.T) {
	sc, _ := newTestContext(t, testConfig(t))

	if sc.IsShutdown() {
		t.Error("IsShutdown() = true before shutdown")
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after shutdown")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("Context() not cancelled after shutdown")
	}
}
