package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/instrumentation"
	"github.com/hostedmcp/basecamp-mcp/internal/logging"
	"github.com/hostedmcp/basecamp-mcp/internal/resources"
	"github.com/hostedmcp/basecamp-mcp/internal/server"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/campfire_tools"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/card_tools"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/message_tools"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/people_tools"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/project_tools"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/search_tools"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/todo_tools"
)

func newServeCmd() *cobra.Command {
	var (
		transport   string
		port        int
		yolo        bool
		logLevel    string
		logFormat   string
		metricsAddr string
		configFile  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Basecamp MCP server",
		Long: `Start the MCP server that exposes Basecamp 4 to AI assistants.

With the default streamable-http transport the server binds to 0.0.0.0 on
$PORT (default 8000) and serves:

  /mcp             the MCP endpoint
  /oauth/start     begins the browser OAuth flow against Launchpad
  /oauth/callback  receives the authorization code and stores the token
  /                liveness probe for the deployment platform

With --transport stdio the MCP session runs over stdin/stdout and no HTTP
listener is started.

All settings can also come from environment variables (BASECAMP_CLIENT_ID,
BASECAMP_CLIENT_SECRET, BASECAMP_ACCOUNT_ID, PUBLIC_BASE_URL, TOKEN_DIR,
PORT, ...) or a TOML file via --config. Flags win over both.

Tools that create or modify Basecamp data are disabled unless --yolo is
set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := map[string]any{}
			if cmd.Flags().Changed("transport") {
				flags["transport"] = transport
			}
			if cmd.Flags().Changed("port") {
				flags["port"] = port
			}
			if cmd.Flags().Changed("log-level") {
				flags["log_level"] = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				flags["log_format"] = logFormat
			}
			if cmd.Flags().Changed("metrics-addr") {
				flags["metrics_addr"] = metricsAddr
			}
			// Write access comes from the flag alone; there is no
			// environment source for it.
			flags["read_only"] = !yolo

			var opts []config.Option
			if configFile != "" {
				opts = append(opts, config.WithConfigFile(configFile))
			}
			opts = append(opts, config.WithFlags(flags))

			cfg, err := config.Load(opts...)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.DefaultTransport, "MCP transport: streamable-http or stdio")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "HTTP listen port for the streamable-http transport")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable tools that create or modify Basecamp data")
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "Log format: text or json")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus listen address, e.g. :9090 (empty disables metrics)")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to a TOML config file")

	return cmd
}

func runServe(cfg *config.Config) error {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	app, err := server.Compose(shutdownCtx, server.ComposeOptions{
		Config:        cfg,
		Logger:        logger,
		Provider:      provider,
		Version:       version,
		RegisterTools: registerAllTools,
	})
	if err != nil {
		return err
	}

	logger.Info("starting basecamp-mcp",
		slog.String("version", version),
		slog.String("transport", cfg.Transport),
		slog.Bool("read_only", cfg.ReadOnly),
		logging.Account(cfg.AccountID),
		logging.Path(app.TokenPath()),
	)

	// Metrics get their own listener so operational endpoints never share
	// a port with the public MCP surface. Stdio mode skips them.
	if cfg.Transport != config.TransportStdio && cfg.MetricsAddr != "" && provider.Enabled() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.MetricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server listening", slog.String("addr", metricsServer.Addr()))
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	switch cfg.Transport {
	case config.TransportStdio:
		return runStdioServer(app.MCPServer())
	case config.TransportStreamableHTTP:
		return app.Serve(shutdownCtx)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", cfg.Transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// toolRegistration pairs a human-readable group name with its registration
// function, so a failure names the group that caused it.
type toolRegistration struct {
	name     string
	register func() error
}

// registerAllTools registers every tool group and the account resource on
// the MCP server. Compose sets the read-only mode on the server context
// before calling this, which is where the write-tool gating comes from.
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	readOnly := sc.ReadOnly()

	registrations := []toolRegistration{
		{"project tools", func() error { return project_tools.RegisterProjectTools(mcpSrv, sc) }},
		{"todo tools", func() error { return todo_tools.RegisterTodoTools(mcpSrv, sc, readOnly) }},
		{"message tools", func() error { return message_tools.RegisterMessageTools(mcpSrv, sc, readOnly) }},
		{"campfire tools", func() error { return campfire_tools.RegisterCampfireTools(mcpSrv, sc, readOnly) }},
		{"card tools", func() error { return card_tools.RegisterCardTools(mcpSrv, sc, readOnly) }},
		{"search tools", func() error { return search_tools.RegisterSearchTools(mcpSrv, sc) }},
		{"people tools", func() error { return people_tools.RegisterPeopleTools(mcpSrv, sc) }},
		{"account resources", func() error { return resources.RegisterAccountResources(mcpSrv, sc) }},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}
	return nil
}
