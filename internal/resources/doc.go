// Package resources provides MCP resources for the Basecamp wrapper.
// Resources are read-only data sources that MCP clients can fetch, such
// as the account summary exposed at basecamp://account.
package resources
