// Package launchpad implements the browser-facing OAuth flow against
// Basecamp's Launchpad authorization server.
//
// Launchpad uses a slight variant of the OAuth2 authorization-code flow: the
// parameter type=web_server must accompany both the authorization redirect
// and the token exchange. Beyond that parameter the flow is standard
// golang.org/x/oauth2; this package implements no grant handling of its own.
//
// # Flow
//
// Flow is an http.Handler serving /start, /callback, /status, and /logout,
// meant to be mounted under /oauth. A visit to /start redirects to
// Launchpad with a single-use state value; the /callback exchange persists
// the resulting token through a tokenstore.Store shared with the MCP tool
// layer.
//
// # Token Source
//
// Flow.TokenSource wraps the oauth2 refresh machinery so that refreshed
// tokens are written back to the store. API clients built on it keep working
// across access-token expiry without the wrapper managing tokens itself.
package launchpad
