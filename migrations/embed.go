// Package migrations holds the storefront's PostgreSQL schema.
package migrations

import "embed"

// FS contains the *.up.sql / *.down.sql migration files.
//
//go:embed *.sql
var FS embed.FS
