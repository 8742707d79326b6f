package main

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/pkg/vaultclient"
	"github.com/urfave/cli/v2"
)

var deposit = cli.Command{
	Name:   "deposit",
	Usage:  "move SOL from the keypair account to its vault",
	Flags:  []cli.Flag{amountFlag},
	Action: depositAction,
}

var withdraw = cli.Command{
	Name:   "withdraw",
	Usage:  "move SOL from the vault back to the keypair account",
	Flags:  []cli.Flag{amountFlag},
	Action: withdrawAction,
}

func depositAction(ctx *cli.Context) error {
	return sendVaultTransaction(ctx, (*vaultclient.Client).NewDepositTransaction)
}

func withdrawAction(ctx *cli.Context) error {
	return sendVaultTransaction(ctx, (*vaultclient.Client).NewWithdrawTransaction)
}

func sendVaultTransaction(
	ctx *cli.Context,
	makeTx func(*vaultclient.Client, solana.PrivateKey, uint64) (*domain.Transaction, error),
) error {
	svc, cleanup, err := getLedgerService()
	if err != nil {
		return err
	}
	defer cleanup()

	lamports, err := parseSol(ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}
	key, err := getKeypair()
	if err != nil {
		return err
	}

	client := vaultclient.New(svc.ProgramID())
	tx, err := makeTx(client, key, lamports)
	if err != nil {
		return err
	}
	receipt, err := svc.SendTransaction(context.Background(), tx)
	if err != nil {
		return err
	}

	info, err := svc.GetUserAccountInfo(context.Background(), key.PublicKey())
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"txid":          receipt.TxID,
		"operation":     receipt.Instruction.Tag().String(),
		"amount":        formatSol(receipt.Instruction.Lamports()),
		"balance":       formatSol(info.OwnerBalance),
		"vault_balance": formatSol(info.VaultBalance),
	})
}
