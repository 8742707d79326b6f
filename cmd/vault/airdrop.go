package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var airdrop = cli.Command{
	Name:   "airdrop",
	Usage:  "credit some SOL to an address of the local ledger",
	Flags:  []cli.Flag{amountFlag, addressFlag},
	Action: airdropAction,
}

func airdropAction(ctx *cli.Context) error {
	svc, cleanup, err := getLedgerService()
	if err != nil {
		return err
	}
	defer cleanup()

	lamports, err := parseSol(ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}
	addr, err := getUserAddress(ctx)
	if err != nil {
		return err
	}

	if err := svc.Airdrop(context.Background(), addr, lamports); err != nil {
		return err
	}
	balance, err := svc.GetBalance(context.Background(), addr)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"address": addr.String(),
		"balance": formatSol(balance),
	})
}
