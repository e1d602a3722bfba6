package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/instrumentation"
	"github.com/hostedmcp/basecamp-mcp/internal/launchpad"
	"github.com/hostedmcp/basecamp-mcp/internal/logging"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

const serviceName = "basecamp-mcp"

// ComposeOptions configures Compose.
type ComposeOptions struct {
	Config *config.Config
	Logger *slog.Logger

	// Provider supplies metrics when instrumentation is enabled. Nil is
	// fine; the server then runs without metrics.
	Provider *instrumentation.Provider

	// Version is reported on /debug/info and to MCP clients during
	// initialization.
	Version string

	// RegisterTools registers the MCP tools on the composed server. The
	// serve command supplies it; keeping registration with the command
	// avoids an import cycle between this package and the tool packages.
	RegisterTools func(srv *mcpserver.MCPServer, sc *ServerContext) error
}

// App is the composed service: a single HTTP handler carrying the MCP
// endpoint, the OAuth flow, and the liveness routes, plus the shared state
// behind them. Compose builds it; Serve runs it.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	version string

	handler http.Handler
	mcp     *mcpserver.MCPServer
	sc      *ServerContext
	flow    *launchpad.Flow
	health  *HealthChecker

	tokenPath string
}

// Compose wires the whole service together: token store, OAuth flow, MCP
// server with its tools, and the HTTP mux. It touches the filesystem only to
// resolve the token directory; no network I/O happens here, so a compose
// failure is always a configuration or filesystem problem.
func Compose(ctx context.Context, opts ComposeOptions) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	tokenDir, err := tokenstore.ResolveDir(cfg.TokenDir, tokenstore.LegacyDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token directory: %w", err)
	}
	if tokenDir != cfg.TokenDir {
		logger.Warn("primary token directory not writable, using fallback",
			logging.Path(tokenDir),
		)
	}
	store := tokenstore.NewFileStore(filepath.Join(tokenDir, cfg.TokenFilename))

	flow, err := launchpad.NewFlow(cfg, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth flow: %w", err)
	}

	sc, err := NewServerContext(ctx, cfg, flow, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create server context: %w", err)
	}
	sc.SetReadOnly(cfg.ReadOnly)
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))
	if opts.Provider != nil && opts.Provider.Enabled() {
		sc.SetMetrics(opts.Provider.Metrics())
	}

	// Session hooks keep the active_sessions gauge in step with MCP client
	// connects and disconnects.
	hooks := &mcpserver.Hooks{}
	if m := sc.Metrics(); m != nil {
		hooks.AddOnRegisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
			m.IncrementActiveSessions(ctx)
		})
		hooks.AddOnUnregisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
			m.DecrementActiveSessions(ctx)
		})
	}

	srv := mcpserver.NewMCPServer(
		serviceName,
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithHooks(hooks),
	)

	if opts.RegisterTools != nil {
		if err := opts.RegisterTools(srv, sc); err != nil {
			return nil, fmt.Errorf("failed to register tools: %w", err)
		}
	}

	streamable := mcpserver.NewStreamableHTTPServer(srv,
		mcpserver.WithEndpointPath("/mcp"),
		mcpserver.WithLogger(logging.NewMCPAdapter(logger)),
	)

	app := &App{
		cfg:       cfg,
		logger:    logger,
		version:   version,
		mcp:       srv,
		sc:        sc,
		flow:      flow,
		health:    NewHealthChecker(sc, version),
		tokenPath: store.Path(),
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.Handle("/mcp/", streamable)

	// The flow serves /start, /callback, /status and /logout relative to
	// the mount. A bare /oauth request gets the mux's implicit redirect to
	// /oauth/. Dropping the cached client after logout keeps a revoked
	// token out of later tool calls.
	mux.Handle("/oauth/", http.StripPrefix("/oauth", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flow.ServeHTTP(w, r)
		if r.Method == http.MethodPost && r.URL.Path == "/logout" {
			sc.ResetBasecampClient()
		}
	})))

	mux.HandleFunc("/debug/info", app.handleDebugInfo)
	mux.HandleFunc("/health", app.handleLiveness)
	mux.HandleFunc("/", app.handleIndex)
	app.health.RegisterHealthEndpoints(mux)

	app.handler = app.instrumentationMiddleware(mux)
	return app, nil
}

// Handler returns the composed HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// MCPServer returns the underlying MCP server, for the stdio transport.
func (a *App) MCPServer() *mcpserver.MCPServer {
	return a.mcp
}

// ServerContext returns the shared tool handler state.
func (a *App) ServerContext() *ServerContext {
	return a.sc
}

// TokenPath returns the resolved token file location.
func (a *App) TokenPath() string {
	return a.tokenPath
}

// Health returns the readiness tracker.
func (a *App) Health() *HealthChecker {
	return a.health
}

// Serve runs the HTTP server on all interfaces until ctx is cancelled, then
// drains in-flight requests before returning.
func (a *App) Serve(ctx context.Context) error {
	if a.cfg.PublicBaseURL != "" {
		if err := validateHTTPSRequirement(a.cfg.PublicBaseURL); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: the MCP endpoint holds streaming responses open
		// for as long as the client keeps the session alive.
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.health.SetReady(true)
	a.logger.Info("http server listening",
		slog.String("addr", srv.Addr),
		slog.String("mcp_endpoint", "/mcp"),
		slog.String("oauth_endpoint", "/oauth"),
		logging.Path(a.tokenPath),
	)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Flip readiness first so load balancers stop routing to us while
	// in-flight requests drain.
	a.health.SetReady(false)
	_ = a.sc.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}

// handleIndex serves the fixed liveness payload at the root. Anything else
// that falls through to this handler is an unknown path.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	a.handleLiveness(w, r)
}

// handleLiveness reports that the process is up. No dependency checks
// happen here; the deployment platform must never restart the service
// because Basecamp is down.
func (a *App) handleLiveness(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleDebugInfo reports how the service was composed, without secrets.
func (a *App) handleDebugInfo(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{
		"service":            serviceName,
		"version":            a.version,
		"transport":          a.cfg.Transport,
		"mcp_endpoint":       "/mcp",
		"oauth_endpoint":     "/oauth",
		"token_path":         a.tokenPath,
		"account_configured": a.cfg.AccountID != "",
		"oauth_configured":   a.cfg.ClientID != "" && a.cfg.ClientSecret != "",
		"read_only":          a.sc.ReadOnly(),
	})
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response", logging.Err(err))
	}
}

// instrumentationMiddleware records request metrics for every route. Paths
// are normalized before they become label values so client-controlled URLs
// cannot blow up metric cardinality.
func (a *App) instrumentationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := a.sc.Metrics()
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		m.RecordHTTPRequest(r.Context(), r.Method,
			instrumentation.NormalizePath(r.URL.Path), rw.statusCode, time.Since(start))
	})
}

// responseWriter captures the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush forwards to the underlying writer so the MCP endpoint can stream
// incremental responses through the middleware.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// validateHTTPSRequirement rejects plain-http public base URLs. Basecamp
// rejects non-https redirect URIs for web apps; loopback hosts are allowed
// over http so local development works.
func validateHTTPSRequirement(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme == "http" {
		host := u.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			return fmt.Errorf("PUBLIC_BASE_URL must use https (got %s); http is allowed only for localhost", baseURL)
		}
	} else if u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %q: must be http (localhost only) or https", u.Scheme)
	}

	return nil
}
