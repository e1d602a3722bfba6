// Package tokenstore provides persistent storage for the Basecamp OAuth token.
//
// Tokens are stored as a single JSON file (the serialized oauth2.Token) on a
// directory that is resolved once at startup: the configured location first,
// then the upstream server's legacy data directory as a one-shot fallback.
// Writes are atomic (temp file + rename) with 0600 permissions so tokens on
// a mounted volume survive crashes and restarts intact.
//
// The file format is owned by the OAuth layer; the rest of the service
// treats both the directory and the filename as opaque configuration.
package tokenstore
