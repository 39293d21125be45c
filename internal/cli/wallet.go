// internal/cli/wallet.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/service"
)

type walletsCmd struct {
	category string
	kind     string
}

func (*walletsCmd) Name() string     { return "wallets" }
func (*walletsCmd) Synopsis() string { return "list wallets with their balances" }
func (*walletsCmd) Usage() string {
	return `ledgerctl wallets [-category active|savings] [-type bank|ewallet|cash]

  Lists wallets and the active, savings and overall totals.
`
}

func (p *walletsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.category, "category", "", "Only list wallets of this category.")
	f.StringVar(&p.kind, "type", "", "Only list wallets of this type.")
}

func (p *walletsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	wallets, err := env.Wallets.ListWallets(ctx, repository.WalletFilter{
		Category: domain.WalletCategory(p.category),
		Type:     domain.WalletType(p.kind),
	})
	if err != nil {
		return env.fail(err)
	}
	totals, err := env.Wallets.Totals(ctx)
	if err != nil {
		return env.fail(err)
	}

	tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCATEGORY\tBALANCE\tSOURCE")
	for _, w := range wallets {
		source := "-"
		if w.SourceWalletID != nil {
			source = fmt.Sprint(*w.SourceWalletID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", w.ID, w.Name, w.Type, w.Category, env.money(w.Balance), source)
	}
	if err := tw.Flush(); err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "\nactive %s  savings %s  total %s\n",
		env.money(totals.Active), env.money(totals.Savings), env.money(totals.Total))
	return subcommands.ExitSuccess
}

// walletFlags are shared by add-wallet and edit-wallet.
type walletFlags struct {
	name     string
	kind     string
	category string
	balance  string
	link     bool
	source   int64
	yes      bool
}

func (p *walletFlags) set(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Wallet name.")
	f.StringVar(&p.kind, "type", string(domain.WalletTypeBank), "Wallet type: bank, ewallet or cash.")
	f.StringVar(&p.category, "category", string(domain.WalletCategoryActive), "Wallet category: active or savings.")
	f.StringVar(&p.balance, "balance", "0", "Wallet balance.")
	f.BoolVar(&p.link, "link", false, "Fund the wallet from (and refund it to) a source wallet.")
	f.Int64Var(&p.source, "source", 0, "ID of the source wallet.")
	f.BoolVar(&p.yes, "yes", false, "Answer yes to confirmation prompts.")
}

func (p *walletFlags) input(env *Env) (service.WalletInput, error) {
	balance, err := parseAmount("balance", p.balance)
	if err != nil {
		return service.WalletInput{}, err
	}
	in := service.WalletInput{
		Name:         p.name,
		Type:         domain.WalletType(p.kind),
		Category:     domain.WalletCategory(p.category),
		Balance:      balance,
		LinkToSource: p.link,
		Confirm:      Prompt(env.In, env.Out, p.yes),
	}
	if p.source > 0 {
		source := p.source
		in.SourceWalletID = &source
	}
	return in, nil
}

type addWalletCmd struct {
	walletFlags
}

func (*addWalletCmd) Name() string     { return "add-wallet" }
func (*addWalletCmd) Synopsis() string { return "create a wallet, optionally funded from a source wallet" }
func (*addWalletCmd) Usage() string {
	return `ledgerctl add-wallet -name <name> [-type t] [-category c] [-balance n] [-link -source <id>]

  Creates a wallet. With -link the opening balance is deducted from the source wallet.
`
}

func (p *addWalletCmd) SetFlags(f *flag.FlagSet) { p.set(f) }

func (p *addWalletCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	in, err := p.input(env)
	if err != nil {
		return env.usage("%v", err)
	}
	wallet, err := env.Links.CreateWallet(ctx, env.Session, in)
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "created wallet %d %q with balance %s\n", wallet.ID, wallet.Name, env.money(wallet.Balance))
	return subcommands.ExitSuccess
}

type editWalletCmd struct {
	walletFlags
}

func (*editWalletCmd) Name() string     { return "edit-wallet" }
func (*editWalletCmd) Synopsis() string { return "edit a wallet, moving the balance difference to or from its source" }
func (*editWalletCmd) Usage() string {
	return `ledgerctl edit-wallet [flags] <wallet-id>

  Overwrites the wallet's fields. For a linked wallet, an increase is funded
  from the source and a decrease is refunded to the stored source. When the
  stored source no longer exists you are asked whether to drop the refund.
`
}

func (p *editWalletCmd) SetFlags(f *flag.FlagSet) { p.set(f) }

func (p *editWalletCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	if f.NArg() != 1 {
		return env.usage("edit-wallet expects exactly one wallet id")
	}
	id, err := parseID("wallet id", f.Arg(0))
	if err != nil {
		return env.usage("%v", err)
	}
	in, err := p.input(env)
	if err != nil {
		return env.usage("%v", err)
	}
	wallet, err := env.Links.EditWallet(ctx, env.Session, id, in)
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "updated wallet %d %q, balance %s\n", wallet.ID, wallet.Name, env.money(wallet.Balance))
	return subcommands.ExitSuccess
}

type deleteWalletCmd struct{}

func (*deleteWalletCmd) Name() string     { return "delete-wallet" }
func (*deleteWalletCmd) Synopsis() string { return "delete a wallet and its transactions" }
func (*deleteWalletCmd) Usage() string {
	return `ledgerctl delete-wallet <wallet-id>

  Refunds a linked wallet's balance to its source, then removes the wallet
  together with its transactions.
`
}

func (*deleteWalletCmd) SetFlags(*flag.FlagSet) {}

func (*deleteWalletCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env, err := envFrom(args)
	if err != nil {
		return subcommands.ExitFailure
	}
	if f.NArg() != 1 {
		return env.usage("delete-wallet expects exactly one wallet id")
	}
	id, err := parseID("wallet id", f.Arg(0))
	if err != nil {
		return env.usage("%v", err)
	}
	deletion, err := env.Links.DeleteWallet(ctx, env.Session, id)
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintf(env.Out, "deleted wallet %d %q and %d transaction(s)\n",
		deletion.Wallet.ID, deletion.Wallet.Name, deletion.TransactionsRemoved)
	if deletion.RefundedTo != nil {
		fmt.Fprintf(env.Out, "refunded %s to wallet %d\n", env.money(deletion.Refunded), *deletion.RefundedTo)
	}
	return subcommands.ExitSuccess
}
