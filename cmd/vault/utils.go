package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/vault-program/internal/config"
	"github.com/tdex-network/vault-program/internal/core/application"
	"github.com/tdex-network/vault-program/pkg/stats"
	"github.com/urfave/cli/v2"
)

const (
	solDecimals = 9
	statsFile   = "metrics.prom"
)

var (
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "the amount in SOL, ie. 0.5",
		Required: true,
	}
	addressFlag = &cli.StringFlag{
		Name:  "address",
		Usage: "the base58 address of the user. If omitted, the one of the keypair is used",
	}
)

// getLedgerService opens the local ledger. The returned cleanup closes it,
// dumping the collected metrics if enabled.
func getLedgerService() (application.LedgerService, func(), error) {
	cfg := config.GetApplicationConfig()

	registry := prometheus.NewRegistry()
	statsEnabled := config.GetBool(config.EnableStatsKey)
	if statsEnabled {
		cfg.StatsRegisterer = registry
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if statsEnabled {
			path := filepath.Join(config.GetStatsDir(), statsFile)
			if err := stats.DumpMetrics(path, registry); err != nil {
				log.WithError(err).Warn("failed to dump metrics")
			}
		}
		cfg.RepoManager().Close()
	}
	return cfg.LedgerService(), cleanup, nil
}

func getKeypair() (solana.PrivateKey, error) {
	path := config.GetString(config.KeypairPathKey)
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair %s, try 'keygen': %w", path, err)
	}
	return key, nil
}

// getUserAddress returns the address given with the address flag or the one
// of the keypair.
func getUserAddress(ctx *cli.Context) (solana.PublicKey, error) {
	if addr := ctx.String(addressFlag.Name); addr != "" {
		return solana.PublicKeyFromBase58(addr)
	}
	key, err := getKeypair()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}

// parseSol converts an amount in SOL into lamports.
func parseSol(amount string) (uint64, error) {
	sol, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %s: %w", amount, err)
	}
	if sol.IsNegative() {
		return 0, fmt.Errorf("invalid amount %s: must not be negative", amount)
	}

	lamports := sol.Shift(solDecimals)
	if !lamports.IsInteger() {
		return 0, fmt.Errorf(
			"invalid amount %s: max %d decimals allowed", amount, solDecimals,
		)
	}
	if !lamports.BigInt().IsUint64() {
		return 0, fmt.Errorf("invalid amount %s: too big", amount)
	}
	return lamports.BigInt().Uint64(), nil
}

// formatSol converts lamports into SOL.
func formatSol(lamports uint64) string {
	return decimal.NewFromBigInt(
		new(big.Int).SetUint64(lamports), -solDecimals,
	).String()
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(buf))
	return nil
}

func writeKeypair(path string, key solana.PrivateKey) error {
	ints := make([]int, 0, len(key))
	for _, b := range key {
		ints = append(ints, int(b))
	}
	buf, err := json.Marshal(ints)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModeDir|0700); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0600)
}

func formatLamports(lamports uint64) string {
	return strconv.FormatUint(lamports, 10)
}
