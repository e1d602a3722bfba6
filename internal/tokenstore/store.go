package tokenstore

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned by Load when no token has been persisted yet.
// Callers treat this as "authorization pending", not as a failure.
var ErrNotFound = errors.New("no token stored")

// Store reads and writes OAuth tokens to persistent storage.
//
// The on-disk format is owned by the OAuth layer that writes it; nothing
// else in the service inspects the file contents.
type Store interface {
	// Load returns the stored token. Returns ErrNotFound if no token has
	// been persisted yet.
	Load(ctx context.Context) (*oauth2.Token, error)

	// Save persists the token to storage, replacing any previous token.
	Save(ctx context.Context, tok *oauth2.Token) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Path returns the storage location for diagnostics.
	Path() string
}
