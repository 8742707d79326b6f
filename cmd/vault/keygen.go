package main

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/config"
	"github.com/urfave/cli/v2"
)

var keygen = cli.Command{
	Name:  "keygen",
	Usage: "generate a new keypair and store it at the keypair path",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite the keypair file if it exists",
		},
	},
	Action: keygenAction,
}

func keygenAction(ctx *cli.Context) error {
	path := config.GetString(config.KeypairPathKey)
	if _, err := os.Stat(path); err == nil && !ctx.Bool("force") {
		return fmt.Errorf("keypair %s already exists, use --force to overwrite it", path)
	}

	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	if err := writeKeypair(path, key); err != nil {
		return err
	}

	return printJSON(ctx, map[string]string{
		"pubkey":  key.PublicKey().String(),
		"keypair": path,
	})
}
