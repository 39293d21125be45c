// internal/cli/statement.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"my-money/internal/report"
)

type statementCmd struct {
	month string
	pdf   string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "summarise a month of income and expenses" }
func (*statementCmd) Usage() string {
	return `ledgerctl statement [-m yyyy-mm] [-pdf <file>]

  Prints the monthly totals per category. With -pdf the full statement is
  also written as a PDF document.
`
}

func (p *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.month, "m", "", "Month to report (defaults to the current month).")
	f.StringVar(&p.pdf, "pdf", "", "Write the statement PDF to this file.")
}

func (p *statementCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	month, err := env.month(p.month)
	if err != nil {
		return env.usage("%v", err)
	}
	st, err := env.Reports.Statement(ctx, env.Session, month)
	if err != nil {
		return env.fail(err)
	}

	fmt.Fprintf(env.Out, "Statement %s for %s\n\n", st.Month, st.Owner)
	tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "income\t%s\n", env.money(st.Income))
	fmt.Fprintf(tw, "expense\t%s\n", env.money(st.Expense))
	fmt.Fprintf(tw, "net\t%s\n", env.money(st.Net))
	fmt.Fprintln(tw, "\t")
	for _, c := range st.Categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.Category, env.money(c.Expense))
	}
	if err := tw.Flush(); err != nil {
		return env.fail(err)
	}

	if p.pdf == "" {
		return subcommands.ExitSuccess
	}
	out, err := os.Create(p.pdf)
	if err != nil {
		return env.fail(err)
	}
	if err := report.RenderPDF(out, st); err != nil {
		out.Close()
		return env.fail(err)
	}
	if err := out.Close(); err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "\nwrote %s\n", p.pdf)
	return subcommands.ExitSuccess
}
