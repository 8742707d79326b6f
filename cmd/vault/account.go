package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var account = cli.Command{
	Name:   "account",
	Usage:  "show the user account record stored by the program",
	Flags:  []cli.Flag{addressFlag},
	Action: accountAction,
}

func accountAction(ctx *cli.Context) error {
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
	if info.Record == nil {
		return fmt.Errorf("user account %s is not initialized", info.UserAccount)
	}

	return printJSON(ctx, map[string]interface{}{
		"address":     info.UserAccount.String(),
		"owner":       info.Record.Owner.String(),
		"user_bump":   info.Record.UserBump,
		"vault_bump":  info.Record.VaultBump,
		"initialized": info.Record.Initialized,
	})
}
