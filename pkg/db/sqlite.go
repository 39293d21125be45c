// pkg/db/sqlite.go
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

func init() {
	// sqlx does not know the modernc driver name; queries are written with '?'.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// NewSQLiteDB opens (and creates if needed) a SQLite database file.
func NewSQLiteDB(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect(DriverSQLite, path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	return db, nil
}
