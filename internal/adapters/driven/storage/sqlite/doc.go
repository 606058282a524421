// Package sqlite provides a SQLite-backed implementation of the
// extraction history port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The schema is managed through versioned migrations in the
// migrations/ directory; each NNN_name.up.sql file is applied once and
// recorded in schema_migrations.
//
// By default, the database is stored at ~/.formmap/data/history.db.
//
// Operations are safe for concurrent use; SQLite runs in WAL mode with a
// busy timeout.
package sqlite
