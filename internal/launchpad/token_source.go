package launchpad

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/logging"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

// TokenSource returns a token source backed by the persisted token. Refresh
// happens inside x/oauth2 against Launchpad; refreshed tokens are written
// back to the store so the newest refresh token survives restarts.
//
// Returns tokenstore.ErrNotFound (wrapped) when no token is stored yet, in
// which case the caller should direct the user to /oauth/start.
func (f *Flow) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	stored, err := f.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored token: %w", err)
	}

	return &persistingTokenSource{
		base:   f.config.TokenSource(ctx, stored),
		store:  f.store,
		logger: f.logger,
		last:   stored,
	}, nil
}

// persistingTokenSource writes tokens back to the store whenever the access
// or refresh token changes. oauth2.TokenSource has no context parameter, so
// write-backs use the background context.
type persistingTokenSource struct {
	base   oauth2.TokenSource
	store  tokenstore.Store
	logger *slog.Logger

	mu   sync.Mutex
	last *oauth2.Token
}

var _ oauth2.TokenSource = (*persistingTokenSource)(nil)

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain token: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil && token.AccessToken == p.last.AccessToken && token.RefreshToken == p.last.RefreshToken {
		return token, nil
	}

	if err := p.store.Save(context.Background(), token); err != nil {
		// The token itself is still valid; the write is retried on the
		// next refresh. Losing it entirely only costs a re-auth.
		p.logger.Error("failed to persist refreshed token",
			logging.Operation("token_refresh"),
			logging.Path(p.store.Path()),
			logging.Err(err),
		)
		return token, nil
	}

	p.last = token
	p.logger.Info("persisted refreshed token",
		logging.Operation("token_refresh"),
		slog.String("access_token", logging.SanitizeToken(token.AccessToken)),
	)
	return token, nil
}
