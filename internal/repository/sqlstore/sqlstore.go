// internal/repository/sqlstore/sqlstore.go

// Package sqlstore implements the repository interfaces with sqlx.
// Queries use '?' placeholders and are rebound for the executor's driver,
// so the same code serves PostgreSQL (lib/pq) and SQLite (modernc).
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"my-money/internal/util"
)

// notFoundOr maps sql.ErrNoRows to util.ErrNotFound and wraps anything else.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return util.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// requireAffected turns a zero-row update or delete into util.ErrNotFound.
func requireAffected(result sql.Result, what string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s %d: %w", what, id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// isUniqueViolation recognises unique-constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// where joins filter clauses into a WHERE fragment.
func where(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
