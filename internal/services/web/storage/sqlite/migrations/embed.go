// Package migrations embeds the page cache schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
