// ReadingDB archives imported sensor tables.
// The dashboard itself always works from the CSV file,
// the archive keeps every import so older exports can be compared and aggregated.
package readingdb

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/NotCoffee418/dbmigrator"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Open connects to the archive at path, creating the file if needed.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	// SQLite allows one writer, avoid SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	// Verify connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive %s: %w", path, err)
	}
	return db, nil
}

// Migrate applies all pending migrations.
func Migrate(db *sql.DB) error {
	dbmigrator.SetDatabaseType(dbmigrator.SQLite)
	<-dbmigrator.MigrateUpCh(
		db,
		migrationFS,
		"migrations",
	)

	// Make sure the schema is there before handing out the handle
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM import_batches").Scan(&n); err != nil {
		return fmt.Errorf("archive schema missing after migration: %w", err)
	}
	return nil
}

// OpenMigrated is Open followed by Migrate.
func OpenMigrated(path string) (*sql.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
