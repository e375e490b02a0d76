// Package database provides SQLite connectivity for calc-core's operation
// history.
//
// The package manages:
//   - A single-connection pool with WAL mode and a busy timeout
//   - Embedded, versioned schema migrations (see the migrations package)
//   - Health checks used by the /health endpoint
//
// A Path of ":memory:" opens a private in-memory database; tests use it.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        cfg.Database.Path,
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with an
// optional matching .down.sql.
package database
