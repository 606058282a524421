// Package migrations holds the versioned schema for the extraction history
// database. Files are named NNN_name.up.sql and applied in version order.
package migrations

import "embed"

// FS holds the up and down scripts.
//
//go:embed *.sql
var FS embed.FS
