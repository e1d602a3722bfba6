package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hostedmcp/basecamp-mcp/internal/basecamp"
	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/instrumentation"
	"github.com/hostedmcp/basecamp-mcp/internal/launchpad"
)

// ServerContext holds the state shared by every MCP tool handler: the
// service configuration, the OAuth flow that produces token sources, and the
// lazily constructed Basecamp API client.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg    *config.Config
	flow   *launchpad.Flow
	logger *slog.Logger

	// client is built on first use so that the server can start (and the
	// OAuth flow can be completed) before any token exists on disk.
	client *basecamp.Client

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	readOnly bool
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, cfg *config.Config, flow *launchpad.Flow, logger *slog.Logger) (*ServerContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if flow == nil {
		return nil, fmt.Errorf("oauth flow cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		cfg:    cfg,
		flow:   flow,
		logger: logger,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the service configuration
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Logger returns the structured logger shared by the tool handlers
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Flow returns the Launchpad OAuth flow
func (sc *ServerContext) Flow() *launchpad.Flow {
	return sc.flow
}

// BasecampClient returns the Basecamp API client, creating and caching it on
// first use. It fails when no OAuth token has been stored yet; the error
// names the /oauth/start route so that MCP clients can surface a useful
// message to the operator.
func (sc *ServerContext) BasecampClient(ctx context.Context) (*basecamp.Client, error) {
	sc.mu.RLock()
	if sc.client != nil {
		client := sc.client
		sc.mu.RUnlock()
		return client, nil
	}
	sc.mu.RUnlock()

	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Another handler may have built the client while we waited for the lock.
	if sc.client != nil {
		return sc.client, nil
	}
	if sc.shutdown {
		return nil, fmt.Errorf("server is shutting down")
	}
	if sc.cfg.AccountID == "" {
		return nil, fmt.Errorf("BASECAMP_ACCOUNT_ID is not configured")
	}

	ts, err := sc.flow.TokenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("not authenticated with Basecamp: %w; complete the authorization at /oauth/start first", err)
	}

	client, err := basecamp.NewClient(ctx, sc.cfg.AccountID, sc.cfg.UserAgent, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Basecamp client: %w", err)
	}

	sc.client = client
	return client, nil
}

// SetBasecampClient sets the Basecamp client, primarily for tests
func (sc *ServerContext) SetBasecampClient(client *basecamp.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// ResetBasecampClient drops the cached client so the next tool call rebuilds
// it from the stored token. The OAuth logout route uses this to stop serving
// requests with a revoked token.
func (sc *ServerContext) ResetBasecampClient() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = nil
}

// Metrics returns the metrics recorder, or nil when instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder used by the instrumented tool handlers
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when auditing is disabled
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger used by the instrumented tool handlers
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// ReadOnly reports whether write tools are disabled
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// SetReadOnly toggles whether write tools are registered and allowed to run
func (sc *ServerContext) SetReadOnly(readOnly bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.readOnly = readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
