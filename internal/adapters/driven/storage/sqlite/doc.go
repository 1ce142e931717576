// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements two stores over a single database connection:
//
//   - CredentialsStore: the signed-in user's OAuth tokens
//   - ExportLog: history of exported plans
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files,
// and applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.pathway/data/pathway.db
package sqlite
