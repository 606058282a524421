// Package driving defines the operations the CLI, the plan editor TUI and
// the MCP server call on the core: extract a field map, browse history,
// build and edit response plans, submit responses and manage settings.
//
// Implementations live in internal/core/services.
package driving
