// Package memory provides in-memory implementations of the driven
// storage ports, used by tests and by runs with history disabled.
package memory
