// cmd/ledgerctl/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"

	app "my-money/internal"
	"my-money/internal/cli"
	"my-money/internal/config"
	"my-money/internal/domain"
)

var logLevel = flag.String("log-level", "warn", "Log level for ledger operations (debug, info, warn, error).")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.Log.Level = *logLevel

	application := app.NewApplication()
	if err := application.InitializeWith(ctx, cfg); err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	env := &cli.Env{
		Wallets: application.Wallets,
		Links:   application.Links,
		Ledger:  application.Ledger,
		Bills:   application.Bills,
		Reports: application.Reports,
		Session: domain.NewSession(cfg.DisplayName, cfg.Currency),
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
	status := commander.Execute(ctx, env)

	if err := application.Shutdown(ctx); err != nil && status == subcommands.ExitSuccess {
		status = subcommands.ExitFailure
	}
	os.Exit(int(status))
}
