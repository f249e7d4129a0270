// Package sql holds the schema migrations
// PostgreSQL reads them from disk through golang-migrate, SQLite applies the embedded copy.
package sql

import "embed"

// Migrations holds the numbered up and down migration files
//
//go:embed *.sql
var Migrations embed.FS
