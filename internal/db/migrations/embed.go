// Package migrations embeds goose SQL migrations.
package migrations

import "embed"

// FS holds the *.sql migrations applied by db.RunMigrations.
//
//go:embed *.sql
var FS embed.FS
