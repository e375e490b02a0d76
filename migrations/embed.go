// Package migrations embeds the history store's SQL migrations into the binary,
// so a fresh deployment needs nothing on disk besides the database path.
package migrations

import (
	"embed"

	"github.com/nerrad567/calc-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at the root of the embedded FS
}
