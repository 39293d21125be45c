// internal/cli/cli_test.go
package cli

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"my-money/internal/domain"
	"my-money/internal/metrics"
	"my-money/internal/report"
	"my-money/internal/repository"
	"my-money/internal/repository/sqlstore"
	"my-money/internal/service"
	"my-money/internal/util"
	"my-money/pkg/db"
)

// newTestEnv wires the services over a fresh SQLite database.
func newTestEnv(t *testing.T) *Env {
	t.Helper()
	conn, err := db.Open(context.Background(), db.Config{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "cli.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	logger := util.DiscardLogger()
	m := metrics.New()
	walletRepo := sqlstore.NewWalletRepository()
	txRepo := sqlstore.NewTransactionRepository()
	wallets := service.NewWalletStore(conn, walletRepo, logger)
	ledger := service.NewTransactionLedger(conn, wallets, txRepo, logger, m)

	return &Env{
		Wallets: wallets,
		Links:   service.NewTransferLinkResolver(conn, wallets, walletRepo, txRepo, logger, m),
		Ledger:  ledger,
		Bills:   service.NewBillPaymentCoordinator(conn, sqlstore.NewBillRepository(), wallets, ledger, logger, m),
		Reports: report.NewService(ledger, wallets),
		Session: domain.NewSession("Tester", "USD"),
		In:      strings.NewReader(""),
		Out:     &bytes.Buffer{},
		Err:     &bytes.Buffer{},
		Now:     func() time.Time { return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC) },
	}
}

// run executes one ledgerctl command line against env.
func run(t *testing.T, env *Env, args ...string) subcommands.ExitStatus {
	t.Helper()
	env.Out = &bytes.Buffer{}
	env.Err = &bytes.Buffer{}

	fs := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "ledgerctl")
	commander.Error = env.Err
	commander.Output = env.Out
	Register(commander)
	require.NoError(t, fs.Parse(args))
	return commander.Execute(context.Background(), env)
}

func output(env *Env) string { return env.Out.(*bytes.Buffer).String() }
func errOutput(env *Env) string { return env.Err.(*bytes.Buffer).String() }

func balanceOf(t *testing.T, env *Env, id int64) decimal.Decimal {
	t.Helper()
	w, err := env.Wallets.GetWallet(context.Background(), id)
	require.NoError(t, err)
	return w.Balance
}

func walletByName(t *testing.T, env *Env, name string) domain.Wallet {
	t.Helper()
	wallets, err := env.Wallets.ListWallets(context.Background(), repository.WalletFilter{})
	require.NoError(t, err)
	for _, w := range wallets {
		if w.Name == name {
			return w
		}
	}
	t.Fatalf("wallet %q not found", name)
	return domain.Wallet{}
}

func TestWalletCommands(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, subcommands.ExitSuccess, run(t, env, "add-wallet", "-name", "Checking", "-balance", "1000"), errOutput(env))
	checking := walletByName(t, env, "Checking")

	require.Equal(t, subcommands.ExitSuccess, run(t, env,
		"add-wallet", "-name", "Rainy day", "-category", "savings", "-balance", "300",
		"-link", "-source", itoa(checking.ID)), errOutput(env))
	savings := walletByName(t, env, "Rainy day")
	assert.True(t, decimal.NewFromInt(700).Equal(balanceOf(t, env, checking.ID)))

	require.Equal(t, subcommands.ExitSuccess, run(t, env, "wallets"))
	assert.Contains(t, output(env), "Checking")
	assert.Contains(t, output(env), "Rainy day")
	assert.Contains(t, output(env), "total")

	t.Run("InsufficientFunds", func(t *testing.T) {
		status := run(t, env, "add-wallet", "-name", "Too big", "-balance", "5000", "-link", "-source", itoa(checking.ID))
		assert.Equal(t, subcommands.ExitFailure, status)
		assert.Contains(t, errOutput(env), "insufficient funds")
	})

	t.Run("BadArguments", func(t *testing.T) {
		assert.Equal(t, subcommands.ExitUsageError, run(t, env, "delete-wallet"))
		assert.Equal(t, subcommands.ExitUsageError, run(t, env, "add-wallet", "-name", "x", "-balance", "lots"))
	})

	t.Run("DeleteRefundsSource", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, run(t, env, "delete-wallet", itoa(savings.ID)), errOutput(env))
		assert.Contains(t, output(env), "refunded")
		assert.True(t, decimal.NewFromInt(1000).Equal(balanceOf(t, env, checking.ID)))
	})
}

func TestEditWalletOrphanedSourcePrompt(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, subcommands.ExitSuccess, run(t, env, "add-wallet", "-name", "Source", "-balance", "1000"))
	source := walletByName(t, env, "Source")
	require.Equal(t, subcommands.ExitSuccess, run(t, env,
		"add-wallet", "-name", "Goal", "-category", "savings", "-balance", "400", "-link", "-source", itoa(source.ID)))
	goal := walletByName(t, env, "Goal")
	require.Equal(t, subcommands.ExitSuccess, run(t, env, "delete-wallet", itoa(source.ID)))

	edit := []string{"edit-wallet", "-name", "Goal", "-category", "savings", "-balance", "100", "-link", itoa(goal.ID)}

	t.Run("Declined", func(t *testing.T) {
		env.In = strings.NewReader("n\n")
		status := run(t, env, edit...)
		assert.Equal(t, subcommands.ExitFailure, status)
		assert.Contains(t, errOutput(env), "cancelled")
		assert.Contains(t, output(env), "[y/N]")
		assert.True(t, decimal.NewFromInt(400).Equal(balanceOf(t, env, goal.ID)))
	})

	t.Run("Confirmed", func(t *testing.T) {
		env.In = strings.NewReader("y\n")
		require.Equal(t, subcommands.ExitSuccess, run(t, env, edit...), errOutput(env))
		assert.True(t, decimal.NewFromInt(100).Equal(balanceOf(t, env, goal.ID)))
	})

	t.Run("AssumeYes", func(t *testing.T) {
		env.In = strings.NewReader("")
		args := []string{"edit-wallet", "-name", "Goal", "-category", "savings", "-balance", "50", "-link", "-yes", itoa(goal.ID)}
		require.Equal(t, subcommands.ExitSuccess, run(t, env, args...), errOutput(env))
		assert.True(t, decimal.NewFromInt(50).Equal(balanceOf(t, env, goal.ID)))
	})
}

func TestTransactionCommands(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, env, "add-wallet", "-name", "Cash", "-type", "cash", "-balance", "200"))
	cash := walletByName(t, env, "Cash")

	require.Equal(t, subcommands.ExitSuccess, run(t, env,
		"add-tx", "-wallet", itoa(cash.ID), "-amount", "50", "-category", "Food"), errOutput(env))
	assert.Contains(t, output(env), "2025-03-10")
	assert.True(t, decimal.NewFromInt(150).Equal(balanceOf(t, env, cash.ID)))

	txs, _, err := env.Ledger.List(context.Background(), domain.TransactionFilter{WalletID: &cash.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Food", txs[0].Title)

	require.Equal(t, subcommands.ExitSuccess, run(t, env, "delete-tx", itoa(txs[0].ID)), errOutput(env))
	assert.True(t, decimal.NewFromInt(200).Equal(balanceOf(t, env, cash.ID)))

	assert.Equal(t, subcommands.ExitFailure, run(t, env, "add-tx", "-wallet", itoa(cash.ID), "-amount", "0"))
	assert.Contains(t, errOutput(env), "amount")
}

func TestBillCommands(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.Equal(t, subcommands.ExitSuccess, run(t, env, "add-wallet", "-name", "Bank", "-balance", "500"))
	bank := walletByName(t, env, "Bank")
	bill, err := env.Bills.CreateBill(ctx, env.Session, service.BillInput{
		Name:    "Internet",
		Amount:  decimal.NewFromInt(120),
		DueDate: 12,
	})
	require.NoError(t, err)

	require.Equal(t, subcommands.ExitSuccess, run(t, env, "bills"))
	assert.Contains(t, output(env), "Internet")
	assert.Contains(t, output(env), string(domain.BillStatusSoon))

	require.Equal(t, subcommands.ExitSuccess, run(t, env, "pay-bill", "-wallet", itoa(bank.ID), itoa(bill.ID)), errOutput(env))
	assert.Contains(t, output(env), "2025-03")
	assert.True(t, decimal.NewFromInt(380).Equal(balanceOf(t, env, bank.ID)))

	assert.Equal(t, subcommands.ExitFailure, run(t, env, "pay-bill", "-wallet", itoa(bank.ID), itoa(bill.ID)))
	assert.Contains(t, errOutput(env), "already paid")
	assert.True(t, decimal.NewFromInt(380).Equal(balanceOf(t, env, bank.ID)))
}

func TestStatementCommand(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, env, "add-wallet", "-name", "Bank", "-balance", "500"))
	bank := walletByName(t, env, "Bank")
	require.Equal(t, subcommands.ExitSuccess, run(t, env,
		"add-tx", "-wallet", itoa(bank.ID), "-amount", "75", "-category", "Transport"))

	pdfPath := filepath.Join(t.TempDir(), "march.pdf")
	require.Equal(t, subcommands.ExitSuccess, run(t, env, "statement", "-m", "2025-03", "-pdf", pdfPath), errOutput(env))
	assert.Contains(t, output(env), "Transport")
	assert.Contains(t, output(env), "Tester")

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Equal(t, subcommands.ExitUsageError, run(t, env, "statement", "-m", "March"))
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	assert.True(t, Prompt(strings.NewReader("yes\n"), &out, false)(ctx, "Drop refund?"))
	assert.True(t, Prompt(strings.NewReader(" Y "), &out, false)(ctx, "Drop refund?"))
	assert.False(t, Prompt(strings.NewReader("\n"), &out, false)(ctx, "Drop refund?"))
	assert.False(t, Prompt(strings.NewReader(""), &out, false)(ctx, "Drop refund?"))
	assert.True(t, Prompt(strings.NewReader(""), &out, true)(ctx, "Drop refund?"))
	assert.Contains(t, out.String(), "Drop refund? [y/N]")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
