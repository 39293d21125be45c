// pkg/db/migrate.go
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// References between tables are weak on purpose: a wallet may be deleted
// while transactions or other wallets still point at it, so no foreign keys.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS wallets (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    category TEXT NOT NULL,
    balance NUMERIC(20, 4) NOT NULL DEFAULT 0,
    source_wallet_id BIGINT,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    amount NUMERIC(20, 4) NOT NULL,
    type TEXT NOT NULL,
    category TEXT NOT NULL,
    wallet_id BIGINT NOT NULL,
    date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS recurring_bills (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    amount NUMERIC(20, 4) NOT NULL,
    due_date INTEGER NOT NULL,
    category TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_payments (
    id BIGSERIAL PRIMARY KEY,
    bill_id BIGINT NOT NULL,
    month TEXT NOT NULL,
    transaction_id BIGINT NOT NULL,
    paid_at TIMESTAMPTZ NOT NULL,
    UNIQUE (bill_id, month)
);

CREATE TABLE IF NOT EXISTS budgets (
    id BIGSERIAL PRIMARY KEY,
    category TEXT NOT NULL,
    amount_limit NUMERIC(20, 4) NOT NULL,
    month TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (category, month)
);

CREATE TABLE IF NOT EXISTS goals (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    target_amount NUMERIC(20, 4) NOT NULL,
    current_amount NUMERIC(20, 4) NOT NULL DEFAULT 0,
    deadline DATE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_wallet_id ON transactions(wallet_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// Decimal columns are TEXT in SQLite so amounts round-trip exactly.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS wallets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    category TEXT NOT NULL,
    balance TEXT NOT NULL DEFAULT '0',
    source_wallet_id INTEGER,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    amount TEXT NOT NULL,
    type TEXT NOT NULL,
    category TEXT NOT NULL,
    wallet_id INTEGER NOT NULL,
    date DATE NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS recurring_bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    amount TEXT NOT NULL,
    due_date INTEGER NOT NULL,
    category TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    bill_id INTEGER NOT NULL,
    month TEXT NOT NULL,
    transaction_id INTEGER NOT NULL,
    paid_at TIMESTAMP NOT NULL,
    UNIQUE (bill_id, month)
);

CREATE TABLE IF NOT EXISTS budgets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL,
    amount_limit TEXT NOT NULL,
    month TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (category, month)
);

CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    target_amount TEXT NOT NULL,
    current_amount TEXT NOT NULL DEFAULT '0',
    deadline DATE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_wallet_id ON transactions(wallet_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// Migrate creates the schema for the connection's driver if it does not exist.
func Migrate(ctx context.Context, conn *sqlx.DB) error {
	schema := postgresSchema
	if conn.DriverName() == DriverSQLite {
		schema = sqliteSchema
	}

	return InTx(ctx, conn, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("migrate: failed to apply schema: %w", err)
		}
		return nil
	})
}
