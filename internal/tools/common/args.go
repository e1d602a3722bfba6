package common

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Basecamp IDs are int64 on the wire, but MCP arguments pass through JSON
// (numbers become float64) and some clients paste IDs as strings. These
// helpers accept both so tool calls do not fail on representation.

// Int64Arg extracts a required integer argument.
func Int64Arg(args map[string]interface{}, key string) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	return coerceInt64(key, v)
}

// OptionalInt64Arg extracts an integer argument, returning 0 when absent.
func OptionalInt64Arg(args map[string]interface{}, key string) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	return coerceInt64(key, v)
}

func coerceInt64(key string, v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", key, n.String())
		}
		return i, nil
	case string:
		if n == "" {
			return 0, fmt.Errorf("%s is required", key)
		}
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", key, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

// StringArg extracts a required non-empty string argument.
func StringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// OptionalStringArg extracts a string argument, returning "" when absent.
func OptionalStringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// OptionalBoolArg extracts a bool argument, returning def when absent.
func OptionalBoolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// Int64SliceArg extracts an optional list of integers (assignee ids and the
// like). Absent means nil, not an error.
func Int64SliceArg(args map[string]interface{}, key string) ([]int64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be a list of integers", key)
	}
	out := make([]int64, 0, len(list))
	for _, item := range list {
		id, err := coerceInt64(key, item)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// ProjectIDFromArgs extracts the project_id argument for metrics and audit
// enrichment. Returns 0 when absent or malformed; handlers that require the
// project report their own validation errors.
func ProjectIDFromArgs(args map[string]interface{}) int64 {
	id, err := OptionalInt64Arg(args, "project_id")
	if err != nil {
		return 0
	}
	return id
}
