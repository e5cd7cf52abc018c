// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// The catalog schema and its seed data both live here, so a fresh
// database is usable as soon as the server has migrated it.
//
//go:embed *.sql
var FS embed.FS
