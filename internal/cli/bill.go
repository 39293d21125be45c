// internal/cli/bill.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"my-money/internal/service"
)

type billsCmd struct {
	month string
}

func (*billsCmd) Name() string     { return "bills" }
func (*billsCmd) Synopsis() string { return "list recurring bills and whether they are paid" }
func (*billsCmd) Usage() string {
	return `ledgerctl bills [-m yyyy-mm]
`
}

func (p *billsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.month, "m", "", "Month to report paid state for (defaults to the current month).")
}

func (p *billsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	month, err := env.month(p.month)
	if err != nil {
		return env.usage("%v", err)
	}
	bills, err := env.Bills.ListBills(ctx, month, env.now())
	if err != nil {
		return env.fail(err)
	}

	tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAMOUNT\tDUE\tSTATUS\tPAID")
	for _, b := range bills {
		paid := "no"
		if b.Paid {
			paid = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", b.ID, b.Name, env.money(b.Amount), b.DueDate, b.Status, paid)
	}
	if err := tw.Flush(); err != nil {
		return env.fail(err)
	}
	return subcommands.ExitSuccess
}

type payBillCmd struct {
	wallet int64
	amount string
	date   string
}

func (*payBillCmd) Name() string     { return "pay-bill" }
func (*payBillCmd) Synopsis() string { return "pay a recurring bill from a wallet" }
func (*payBillCmd) Usage() string {
	return `ledgerctl pay-bill -wallet <id> [-amount n] [-d yyyy-mm-dd] <bill-id>

  Records the bill as an expense and marks it paid for the month of the
  payment date. The amount defaults to the bill amount.
`
}

func (p *payBillCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.wallet, "wallet", 0, "ID of the wallet to pay from.")
	f.StringVar(&p.amount, "amount", "", "Amount paid (defaults to the bill amount).")
	f.StringVar(&p.date, "d", "", "Payment date (defaults to today).")
}

func (p *payBillCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	if f.NArg() != 1 {
		return env.usage("pay-bill expects exactly one bill id")
	}
	billID, err := parseID("bill id", f.Arg(0))
	if err != nil {
		return env.usage("%v", err)
	}
	date, err := env.day(p.date)
	if err != nil {
		return env.usage("%v", err)
	}

	bill, err := env.Bills.GetBill(ctx, billID)
	if err != nil {
		return env.fail(err)
	}
	amount := bill.Amount
	if p.amount != "" {
		if amount, err = parseAmount("amount", p.amount); err != nil {
			return env.usage("%v", err)
		}
	}

	res, err := env.Bills.Pay(ctx, env.Session, service.PayBillInput{
		BillID:   billID,
		WalletID: p.wallet,
		Amount:   amount,
		Date:     date,
	})
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "paid %q for %s: %s (transaction %d)\n",
		bill.Name, res.Payment.Month, env.money(res.Transaction.Amount), res.Transaction.ID)
	return subcommands.ExitSuccess
}
