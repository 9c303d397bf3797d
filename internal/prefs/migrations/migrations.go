// Package migrations embeds the schema migrations for the local preferences
// database so they compile into the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
