// internal/cli/transaction.go
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"my-money/internal/domain"
	"my-money/internal/service"
)

type addTxCmd struct {
	wallet   int64
	kind     string
	amount   string
	category string
	title    string
	date     string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record an income or expense against a wallet" }
func (*addTxCmd) Usage() string {
	return `ledgerctl add-tx -wallet <id> -amount <n> [-type income|expense] [-category c] [-title t] [-d yyyy-mm-dd]

  Records a transaction and applies it to the wallet balance.
`
}

func (p *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.wallet, "wallet", 0, "ID of the wallet the transaction belongs to.")
	f.StringVar(&p.kind, "type", string(domain.TransactionTypeExpense), "Transaction type: income or expense.")
	f.StringVar(&p.amount, "amount", "", "Positive amount.")
	f.StringVar(&p.category, "category", domain.CategoryOther, "Transaction category.")
	f.StringVar(&p.title, "title", "", "Description. Defaults to the category.")
	f.StringVar(&p.date, "d", "", "Transaction date (defaults to today).")
}

func (p *addTxCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	amount, err := parseAmount("amount", p.amount)
	if err != nil {
		return env.usage("%v", err)
	}
	date, err := env.day(p.date)
	if err != nil {
		return env.usage("%v", err)
	}
	tx, err := env.Ledger.Create(ctx, env.Session, service.TransactionInput{
		Title:    p.title,
		Amount:   amount,
		Type:     domain.TransactionType(p.kind),
		Category: p.category,
		WalletID: p.wallet,
		Date:     date,
	})
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "recorded %s %d %q %s on %s\n",
		tx.Type, tx.ID, tx.Title, env.money(tx.Amount), tx.Date.Format(domain.DateLayout))
	return subcommands.ExitSuccess
}

type deleteTxCmd struct{}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "delete a transaction and reverse its effect" }
func (*deleteTxCmd) Usage() string {
	return `ledgerctl delete-tx <transaction-id>
`
}

func (*deleteTxCmd) SetFlags(*flag.FlagSet) {}

func (*deleteTxCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	if f.NArg() != 1 {
		return env.usage("delete-tx expects exactly one transaction id")
	}
	id, err := parseID("transaction id", f.Arg(0))
	if err != nil {
		return env.usage("%v", err)
	}
	tx, err := env.Ledger.Delete(ctx, env.Session, id)
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "deleted transaction %d %q (%s)\n", tx.ID, tx.Title, env.money(tx.Amount))
	return subcommands.ExitSuccess
}
