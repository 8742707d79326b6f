package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "show the balances of a user, its user account and its vault",
	Flags:  []cli.Flag{addressFlag},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	svc, cleanup, err := getLedgerService()
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := getUserAddress(ctx)
	if err != nil {
		return err
	}

	info, err := svc.GetUserAccountInfo(context.Background(), addr)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"user":                  formatSol(info.OwnerBalance),
		"user_account":          formatSol(info.AccountBalance),
		"vault":                 formatSol(info.VaultBalance),
		"user_lamports":         formatLamports(info.OwnerBalance),
		"user_account_lamports": formatLamports(info.AccountBalance),
		"vault_lamports":        formatLamports(info.VaultBalance),
	})
}
