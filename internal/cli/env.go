// internal/cli/env.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"my-money/internal/domain"
	"my-money/internal/report"
	"my-money/internal/service"
)

// Env is handed to every command through Commander.Execute.
type Env struct {
	Wallets service.WalletStore
	Links   service.TransferLinkResolver
	Ledger  service.TransactionLedger
	Bills   service.BillPaymentCoordinator
	Reports *report.Service
	Session domain.Session

	In  io.Reader
	Out io.Writer
	Err io.Writer
	Now func() time.Time
}

func envFrom(args []interface{}) (*Env, error) {
	if len(args) == 0 {
		return nil, errors.New("cli: no environment passed to command")
	}
	env, ok := args[0].(*Env)
	if !ok || env == nil {
		return nil, errors.New("cli: unexpected command argument")
	}
	return env, nil
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// fail prints err and maps it to an exit status.
func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Err, "error:", err)
	return subcommands.ExitFailure
}

// usage prints a usage problem.
func (e *Env) usage(format string, a ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, format+"\n", a...)
	return subcommands.ExitUsageError
}

// Prompt returns a ConfirmFunc asking a y/N question on out and reading the
// answer from in. With assumeYes it approves without asking.
func Prompt(in io.Reader, out io.Writer, assumeYes bool) service.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(_ context.Context, prompt string) bool {
		if assumeYes {
			fmt.Fprintf(out, "%s [y/N]: y\n", prompt)
			return true
		}
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", field, s)
	}
	return d, nil
}

func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return id, nil
}

// day parses an optional yyyy-mm-dd flag, defaulting to today.
func (e *Env) day(s string) (time.Time, error) {
	if s == "" {
		return domain.TruncateDay(e.now()), nil
	}
	return domain.ParseDate(s)
}

// month parses an optional yyyy-mm flag, defaulting to the current month.
func (e *Env) month(s string) (string, error) {
	if s == "" {
		return domain.MonthOf(e.now()), nil
	}
	if _, err := domain.ParseMonth(s); err != nil {
		return "", err
	}
	return s, nil
}

func (e *Env) money(d decimal.Decimal) string {
	return report.FormatAmount(d, e.Session.Currency)
}
