package migrations

import "embed"

// FS holds the versioned schema migrations, one directory per backend.
//
//go:embed sqlite postgres
var FS embed.FS
