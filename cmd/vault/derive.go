package main

import (
	"github.com/tdex-network/vault-program/internal/config"
	"github.com/tdex-network/vault-program/pkg/vaultclient"
	"github.com/urfave/cli/v2"
)

var derive = cli.Command{
	Name:   "derive",
	Usage:  "derive the user account and vault addresses of a user",
	Flags:  []cli.Flag{addressFlag},
	Action: deriveAction,
}

func deriveAction(ctx *cli.Context) error {
	addr, err := getUserAddress(ctx)
	if err != nil {
		return err
	}

	addresses, err := vaultclient.New(config.GetProgramID()).Derive(addr)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]interface{}{
		"program_id":        config.GetProgramID().String(),
		"user":              addresses.Owner.String(),
		"user_account":      addresses.UserAccount.String(),
		"user_account_bump": addresses.UserAccountBump,
		"vault":             addresses.Vault.String(),
		"vault_bump":        addresses.VaultBump,
	})
}
