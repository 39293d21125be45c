// Package cli implements the ledgerctl command line front end.
package cli

import (
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() and then Execute() with an *Env argument.
func Register(c *subcommands.Commander) {
	c.Register(&walletsCmd{}, "wallets")
	c.Register(&addWalletCmd{}, "wallets")
	c.Register(&editWalletCmd{}, "wallets")
	c.Register(&deleteWalletCmd{}, "wallets")

	c.Register(&addTxCmd{}, "transactions")
	c.Register(&deleteTxCmd{}, "transactions")

	c.Register(&billsCmd{}, "bills")
	c.Register(&payBillCmd{}, "bills")

	c.Register(&statementCmd{}, "reports")
}
