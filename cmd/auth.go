package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/launchpad"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

func newAuthCmd() *cobra.Command {
	var (
		listenAddr string
		manual     bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize with Basecamp from the terminal",
		Long: `Run the Launchpad OAuth flow without a deployed HTTP server.

The command prints the authorization URL, waits for Launchpad to redirect
back to a local listener, exchanges the code and stores the token in the
same location the serve command reads from.

Use --manual when this machine cannot receive the redirect (for example
over SSH). The command then uses the configured redirect URI and asks for
the authorization code to be pasted from the browser's address bar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.ClientID == "" || cfg.ClientSecret == "" {
				return fmt.Errorf("oauth client credentials are not configured (set BASECAMP_CLIENT_ID and BASECAMP_CLIENT_SECRET)")
			}
			return runAuth(cmd.Context(), cfg, authOptions{
				listenAddr: listenAddr,
				manual:     manual,
				timeout:    timeout,
			})
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "localhost:8742", "Address for the local callback listener")
	cmd.Flags().BoolVar(&manual, "manual", false, "Paste the authorization code instead of listening for the redirect")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "How long to wait for the authorization to finish")

	return cmd
}

type authOptions struct {
	listenAddr string
	manual     bool
	timeout    time.Duration
}

func runAuth(ctx context.Context, cfg *config.Config, opts authOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	tokenDir, err := tokenstore.ResolveDir(cfg.TokenDir, tokenstore.LegacyDataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve token directory: %w", err)
	}
	store := tokenstore.NewFileStore(filepath.Join(tokenDir, cfg.TokenFilename))

	conf := launchpad.NewConfig(cfg)
	state := uuid.NewString()

	var code string
	if opts.manual {
		code, err = readAuthCode(ctx, conf, state)
	} else {
		code, err = waitForAuthCode(ctx, conf, state, opts.listenAddr)
	}
	if err != nil {
		return err
	}

	token, err := launchpad.Exchange(ctx, conf, code)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	if err := store.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Printf("Authorization complete. Token stored at %s\n", store.Path())
	return nil
}

// readAuthCode prints the authorization URL and reads the code from stdin.
// The configured redirect URI is used unchanged, so the code has to be
// copied out of the browser's address bar after the redirect.
func readAuthCode(ctx context.Context, conf *oauth2.Config, state string) (string, error) {
	if conf.RedirectURL == "" {
		return "", fmt.Errorf("manual mode needs a configured redirect URI (set PUBLIC_BASE_URL or BASECAMP_REDIRECT_URI)")
	}

	fmt.Printf("Open this URL in a browser and authorize the application:\n\n  %s\n\n", launchpad.AuthCodeURL(conf, state))
	fmt.Print("Paste the value of the code parameter from the redirect URL: ")

	type readResult struct {
		code string
		err  error
	}
	resultCh := make(chan readResult, 1)
	go func() {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		resultCh <- readResult{code: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("authorization did not complete: %w", ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return "", fmt.Errorf("failed to read authorization code: %w", res.err)
		}
		if res.code == "" {
			return "", fmt.Errorf("no authorization code provided")
		}
		return res.code, nil
	}
}

// waitForAuthCode runs a one-shot HTTP listener for the Launchpad redirect
// and returns the authorization code it delivers. The redirect URI is
// rewritten to point at the listener; the Launchpad application has to
// allow localhost redirect URIs for this to work.
func waitForAuthCode(ctx context.Context, conf *oauth2.Config, state, listenAddr string) (string, error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", listenAddr, err)
	}

	// The exchange must present the same redirect URI as the
	// authorization request, so the rewrite has to happen on the shared
	// config before the URL is printed.
	conf.RedirectURL = fmt.Sprintf("http://%s/oauth/callback", ln.Addr().String())

	type callbackResult struct {
		code string
		err  error
	}
	resultCh := make(chan callbackResult, 1)
	deliver := func(res callbackResult) {
		select {
		case resultCh <- res:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if errCode := query.Get("error"); errCode != "" {
			http.Error(w, fmt.Sprintf("authorization failed: %s", errCode), http.StatusBadRequest)
			deliver(callbackResult{err: fmt.Errorf("authorization denied: %s", errCode)})
			return
		}
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			deliver(callbackResult{err: fmt.Errorf("state mismatch in oauth callback")})
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			deliver(callbackResult{err: fmt.Errorf("callback carried no authorization code")})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Authorization complete</h1><p>You can close this window and return to the terminal.</p></body></html>\n"))
		deliver(callbackResult{code: code})
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		_ = srv.Serve(ln)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Open this URL in a browser and authorize the application:\n\n  %s\n\nWaiting for the redirect on %s ...\n", launchpad.AuthCodeURL(conf, state), conf.RedirectURL)

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("authorization did not complete: %w", ctx.Err())
	case res := <-resultCh:
		return res.code, res.err
	}
}
