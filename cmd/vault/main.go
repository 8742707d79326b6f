package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/vault-program/internal/config"
	"github.com/urfave/cli/v2"
)

var (
	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "the directory where the local ledger is stored",
	}
	keypairFlag = &cli.StringFlag{
		Name:  "keypair",
		Usage: "the path of the JSON keypair file of the user",
	}
	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "the type of database to use, badger or inmemory",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "vault"
	app.Usage = "Command line interface to deposit into and withdraw from program derived vaults"
	app.Flags = []cli.Flag{datadirFlag, keypairFlag, dbFlag}
	app.Before = initConfig
	app.Commands = append(
		app.Commands,
		&keygen,
		&airdrop,
		&deposit,
		&withdraw,
		&balance,
		&derive,
		&account,
		&history,
	)

	return app
}

func initConfig(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}

	if ctx.IsSet(datadirFlag.Name) {
		config.Set(config.DatadirKey, ctx.String(datadirFlag.Name))
	}
	if ctx.IsSet(keypairFlag.Name) {
		config.Set(config.KeypairPathKey, ctx.String(keypairFlag.Name))
	}
	if ctx.IsSet(dbFlag.Name) {
		config.Set(config.DBTypeKey, ctx.String(dbFlag.Name))
	}
	if err := config.Reload(); err != nil {
		return err
	}

	log.SetLevel(config.GetLogLevel())
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[vault] %v\n", err)
	os.Exit(1)
}
