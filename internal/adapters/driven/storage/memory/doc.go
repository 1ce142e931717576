// Package memory provides in-memory implementations of driven ports.
// They back tests and are the fallback when the SQLite store cannot be opened.
package memory
