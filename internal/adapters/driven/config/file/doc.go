// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem as TOML.
//
// Adapters:
//   - ConfigStore: application configuration (~/.formmap/config.toml)
//   - PlanStore: response plan files
package file
