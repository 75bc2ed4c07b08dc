package migrations

import "embed"

// FS holds the SQL schema files applied at startup.
//
//go:embed *.sql
var FS embed.FS
