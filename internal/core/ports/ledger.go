package ports

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
)

// CreateAccountArgs are the arguments to allocate a new account.
type CreateAccountArgs struct {
	Payer    solana.PublicKey
	Address  solana.PublicKey
	Lamports uint64
	Space    uint64
	Owner    solana.PublicKey
}

// Ledger is the capability a program uses to read and modify accounts while
// processing an instruction. Every method fails with a domain error whose
// kind can be checked with errors.Is.
type Ledger interface {
	// GetAccount returns the account at addr, data included. Never written
	// addresses are returned as empty system accounts.
	GetAccount(ctx context.Context, addr solana.PublicKey) (*domain.Account, error)
	// WriteData replaces the data at addr, which must be owned by the invoking
	// program and keep its size.
	WriteData(ctx context.Context, addr solana.PublicKey, data []byte) error
	// CreateAccount allocates a zeroed account and assigns it to the owner.
	// The payer only covers what the address lacks to hold args.Lamports. If
	// the new address is program derived, signer must authorize it.
	CreateAccount(
		ctx context.Context, args CreateAccountArgs, signer *domain.Signer,
	) error
	// Balance returns the lamports held at addr.
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)
	// Transfer moves lamports as described by the intent.
	Transfer(ctx context.Context, intent *domain.TransferIntent) error
	// MinimumBalance returns the rent exempt balance for the given data size.
	MinimumBalance(dataSize uint64) uint64
}
