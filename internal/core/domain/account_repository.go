package domain

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// AccountRepository persists the ledger accounts.
type AccountRepository interface {
	// GetAccount returns the account stored at addr or ErrAccountNotFound.
	GetAccount(ctx context.Context, addr solana.PublicKey) (*Account, error)
	// UpsertAccounts stores the given accounts, replacing existing ones.
	UpsertAccounts(ctx context.Context, accounts ...*Account) error
}
