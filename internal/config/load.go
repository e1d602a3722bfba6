package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the environment variables this service honors to config keys.
// The names are fixed deployment contract (Railway secrets, upstream docs),
// not derived from a prefix scheme, so the mapping is explicit.
var envKeys = map[string]string{
	"BASECAMP_CLIENT_ID":     "client_id",
	"BASECAMP_CLIENT_SECRET": "client_secret",
	"BASECAMP_ACCOUNT_ID":    "account_id",
	"BASECAMP_REDIRECT_URI":  "redirect_uri",
	"USER_AGENT":             "user_agent",
	"PUBLIC_BASE_URL":        "public_base_url",
	"TOKEN_DIR":              "token_dir",
	"TOKEN_FILENAME":         "token_filename",
	"PORT":                   "port",
	"LOG_LEVEL":              "log_level",
	"LOG_FORMAT":             "log_format",
	"METRICS_ADDR":           "metrics_addr",
}

// Option customizes Load.
type Option func(*loader)

type loader struct {
	configFile  string
	flags       map[string]any
	environFunc func() []string
}

// WithConfigFile loads an optional TOML config file before the environment.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithFlags applies explicitly set CLI flag values on top of the environment.
// Keys use the config key names (e.g. "transport", "read_only").
func WithFlags(flags map[string]any) Option {
	return func(l *loader) { l.flags = flags }
}

// WithEnviron replaces the process environment lookup, for tests.
func WithEnviron(environFunc func() []string) Option {
	return func(l *loader) { l.environFunc = environFunc }
}

// Load builds the configuration with precedence:
// defaults < config file < environment variables < CLI flags.
// The result is validated and immutable by convention; it is read exactly
// once at startup and passed explicitly from there.
func Load(opts ...Option) (*Config, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	k := koanf.New(".")

	// 1. Load from config file if provided
	if l.configFile != "" {
		if err := k.Load(file.Provider(l.configFile), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// 2. Load from environment variables
	envProvider := env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			mapped, ok := envKeys[key]
			if !ok {
				// Unmapped variables are skipped entirely.
				return "", nil
			}
			return mapped, value
		},
		EnvironFunc: l.environFunc,
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	// 3. Load from CLI flags if provided
	if len(l.flags) > 0 {
		if err := k.Load(confmap.Provider(l.flags, "."), nil); err != nil {
			return nil, fmt.Errorf("loading CLI flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
