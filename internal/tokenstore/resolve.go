package tokenstore

import (
	"errors"
	"fmt"
	"os"
)

// LegacyDataDir is where the upstream Basecamp MCP server historically kept
// its token file, beside its own install. It is the fallback location when
// the configured token directory cannot be used, so deployments that predate
// volume mounts keep working.
const LegacyDataDir = "/opt/basecamp-mcp"

// ResolveDir picks the directory the token file will live in. It tries the
// primary (configured) directory first; if that cannot be created or written
// it retries exactly once with the fallback. If both fail the returned error
// carries both causes and the caller must not start serving.
//
// Resolution happens once at startup; the result is passed explicitly to the
// store rather than re-derived later.
func ResolveDir(primary, fallback string) (string, error) {
	primaryErr := ensureWritableDir(primary)
	if primaryErr == nil {
		return primary, nil
	}

	fallbackErr := ensureWritableDir(fallback)
	if fallbackErr == nil {
		return fallback, nil
	}

	return "", fmt.Errorf("no usable token directory: %w", errors.Join(primaryErr, fallbackErr))
}

// ensureWritableDir creates the directory if needed and probes that files
// can actually be created in it. MkdirAll alone is not enough: it succeeds
// for an existing directory the process cannot write to.
func ensureWritableDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("token directory is empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("token directory %s is not writable: %w", dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}
