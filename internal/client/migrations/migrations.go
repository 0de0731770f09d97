// Package migrations embeds the goose migrations of the local cookie store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
