package main

import (
	"context"

	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var history = cli.Command{
	Name:  "history",
	Usage: "get the list of deposits and withdrawals of a user",
	Flags: []cli.Flag{
		addressFlag,
		&cli.Int64Flag{
			Name:  "page",
			Usage: "the number of the page to be listed. If omitted, the entire list is returned",
		},
		&cli.Int64Flag{
			Name:  "page-size",
			Usage: "the size of the page",
			Value: 10,
		},
	},
	Action: historyAction,
}

type activity struct {
	TxID      string `json:"txid"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

func historyAction(ctx *cli.Context) error {
	svc, cleanup, err := getLedgerService()
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := getUserAddress(ctx)
	if err != nil {
		return err
	}

	var page domain.Page
	if pageNumber := ctx.Int64("page"); pageNumber > 0 {
		page = domain.NewPage(pageNumber, ctx.Int64("page-size"))
	}

	deposits, err := svc.ListDeposits(context.Background(), addr, page)
	if err != nil {
		return err
	}
	withdrawals, err := svc.ListWithdrawals(context.Background(), addr, page)
	if err != nil {
		return err
	}

	resp := map[string][]activity{
		"deposits":    make([]activity, 0, len(deposits)),
		"withdrawals": make([]activity, 0, len(withdrawals)),
	}
	for _, d := range deposits {
		resp["deposits"] = append(resp["deposits"], activity{
			d.TxID, formatSol(d.Amount), d.Timestamp,
		})
	}
	for _, w := range withdrawals {
		resp["withdrawals"] = append(resp["withdrawals"], activity{
			w.TxID, formatSol(w.Amount), w.Timestamp,
		})
	}

	return printJSON(ctx, resp)
}
