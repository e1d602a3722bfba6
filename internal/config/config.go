package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Transport values for the MCP server.
const (
	TransportStreamableHTTP = "streamable-http"
	TransportStdio          = "stdio"
)

// Default configuration values. TokenDir and TokenFilename match what the
// upstream Basecamp MCP server and its deployment docs assume.
const (
	DefaultTokenDir      = "/app/data"
	DefaultTokenFilename = "oauth_tokens.json"
	DefaultPort          = 8000
	DefaultUserAgent     = "basecamp-mcp (github.com/hostedmcp/basecamp-mcp)"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultTransport     = TransportStreamableHTTP
	DefaultMetricsAddr   = ":9090"
)

// Config holds the process configuration. It is read once at startup and
// passed explicitly; nothing reads the environment for these values after
// Load returns.
type Config struct {
	// Basecamp OAuth application credentials, forwarded to the OAuth layer.
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`

	// AccountID selects the Basecamp account on api requests
	// (https://3.basecampapi.com/{account_id}/...).
	AccountID string `json:"account_id"`

	// UserAgent identifies this deployment to Basecamp, which rejects
	// anonymous clients.
	UserAgent string `json:"user_agent"`

	// PublicBaseURL is the externally reachable base URL of this service,
	// used to derive the OAuth redirect URI when none is set explicitly.
	PublicBaseURL string `json:"public_base_url" validate:"omitempty,url"`

	// RedirectURI is the OAuth callback URL registered with Basecamp.
	// Derived from PublicBaseURL when empty.
	RedirectURI string `json:"redirect_uri" validate:"omitempty,url"`

	// TokenDir and TokenFilename locate the token file the OAuth layer
	// persists. Both are opaque pass-through values at this layer; the
	// directory is resolved (with a legacy fallback) at startup.
	TokenDir      string `json:"token_dir" validate:"required"`
	TokenFilename string `json:"token_filename" validate:"required"`

	// Port the HTTP server binds on all interfaces.
	Port int `json:"port" validate:"min=1,max=65535"`

	LogLevel  string `json:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `json:"log_format" validate:"oneof=text json"`

	// Transport selects how the MCP server is exposed.
	Transport string `json:"transport" validate:"oneof=streamable-http stdio"`

	// ReadOnly disables tools that modify Basecamp data.
	ReadOnly bool `json:"read_only"`

	// MetricsAddr is the dedicated Prometheus listener address. Empty
	// disables the metrics server.
	MetricsAddr string `json:"metrics_addr"`
}

// Default creates a new Config with default values applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset config fields with their defaults and derives
// the redirect URI from the public base URL when possible.
func (c *Config) ApplyDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.TokenDir == "" {
		c.TokenDir = DefaultTokenDir
	}
	if c.TokenFilename == "" {
		c.TokenFilename = DefaultTokenFilename
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Transport == "" {
		c.Transport = DefaultTransport
	}

	// An explicitly configured redirect URI wins; otherwise derive it from
	// the public base URL so deployments only have to set PUBLIC_BASE_URL.
	if c.RedirectURI == "" && c.PublicBaseURL != "" {
		c.RedirectURI = strings.TrimRight(c.PublicBaseURL, "/") + "/oauth/callback"
	}
}

// Validate validates the configuration using struct tags. Client credentials
// are not required here: whether OAuth is usable is the OAuth layer's
// concern, and the service must still boot without them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the listen address on all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// TokenPath returns the configured token file location. This is a pure join;
// the directory may still be swapped for the legacy fallback at startup.
func (c *Config) TokenPath() string {
	return filepath.Join(c.TokenDir, c.TokenFilename)
}
