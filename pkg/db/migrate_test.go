// pkg/db/migrate_test.go
package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesSchema(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "nested", "money.db")})
	require.NoError(t, err)
	defer conn.Close()

	var tables []string
	err = conn.SelectContext(ctx, &tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"bill_payments", "budgets", "goals", "recurring_bills", "transactions", "wallets"}, tables)

	// Applying the schema twice is a no-op.
	require.NoError(t, Migrate(ctx, conn))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "money.db")})
	require.NoError(t, err)
	defer conn.Close()

	boom := errors.New("boom")
	err = InTx(ctx, conn, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO goals (name, target_amount, current_amount, created_at) VALUES ('Bike', '100', '0', CURRENT_TIMESTAMP)`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM goals`))
	assert.Zero(t, count)
}
