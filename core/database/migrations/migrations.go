// Package migrations embeds the goose SQL migrations for MySQL.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
