// Package mcp provides an MCP (Model Context Protocol) server adapter for formmap.
// It lets AI assistants extract form field maps and browse extraction history.
package mcp

import "errors"

// ErrMissingExtractService is returned when the extract service is not provided.
var ErrMissingExtractService = errors.New("mcp: extract service is required")
