// Package migrations embeds the SQL schema migrations for every supported
// storage backend. Files are named NNN_name.sql and applied in order.
package migrations

import "embed"

//go:embed sqlite postgres
var FS embed.FS
