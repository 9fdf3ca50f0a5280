// Package api provides the HTTP API server for creating and querying forum
// analysis sessions.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// EnableMCP mounts the MCP handler under /mcp
	EnableMCP bool
}
