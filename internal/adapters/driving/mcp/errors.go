// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Deckhand. It lets AI assistants search the vessel maintenance platform and
// open entities through the same core services the TUI and CLI use.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
