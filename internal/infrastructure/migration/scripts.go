package migration

import "embed"

// Scripts holds the versioned SQL migrations: golang-migrate pairs under
// scripts/mysql and goose files under scripts/sqlite.
//
//go:embed scripts/mysql/*.sql scripts/sqlite/*.sql
var Scripts embed.FS

const (
	mysqlScriptsDir  = "scripts/mysql"
	sqliteScriptsDir = "scripts/sqlite"
)
