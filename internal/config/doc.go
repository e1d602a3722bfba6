// Package config loads and validates the process configuration.
//
// Configuration is environment-first: the deployment contract is a fixed set
// of environment variables (BASECAMP_CLIENT_ID, BASECAMP_CLIENT_SECRET,
// BASECAMP_ACCOUNT_ID, USER_AGENT, PUBLIC_BASE_URL, BASECAMP_REDIRECT_URI,
// TOKEN_DIR, TOKEN_FILENAME, PORT, plus ambient LOG_LEVEL, LOG_FORMAT and
// METRICS_ADDR). An optional TOML file and CLI flags layer below and above
// the environment respectively:
//
//	defaults < config file < environment < flags
//
// Load is called exactly once at startup; the resulting Config struct is
// treated as immutable and passed explicitly to the composition step, so no
// other package reads the process environment for these values.
package config
