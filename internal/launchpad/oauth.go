package launchpad

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/config"
)

// Endpoint defines the OAuth2 endpoints for Basecamp's Launchpad
// authorization server. Launchpad expects credentials as form parameters,
// not basic auth.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://launchpad.37signals.com/authorization/new",
	TokenURL:  "https://launchpad.37signals.com/authorization/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// grantType is required by Launchpad on both the authorization redirect and
// the token exchange. Omitting it on either request fails the flow.
var grantType = oauth2.SetAuthURLParam("type", "web_server")

// NewConfig builds the oauth2 configuration for the Launchpad flow from the
// service configuration.
func NewConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  cfg.RedirectURI,
	}
}

// AuthCodeURL builds the Launchpad authorization URL for the given state,
// carrying the web_server grant type parameter.
func AuthCodeURL(conf *oauth2.Config, state string) string {
	return conf.AuthCodeURL(state, grantType)
}

// Exchange trades an authorization code for a token. The grant type
// parameter rides along; Launchpad rejects the exchange without it.
func Exchange(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
	return conf.Exchange(ctx, code, grantType)
}
