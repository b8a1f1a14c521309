// Package migrations embeds the goose SQL migrations and applies them at
// startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
