package application

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
)

// **** Ledger ****

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetAccount(
	ctx context.Context, addr solana.PublicKey,
) (*domain.Account, error) {
	args := m.Called(ctx, addr)

	var res *domain.Account
	if a := args.Get(0); a != nil {
		res = a.(*domain.Account)
	}
	return res, args.Error(1)
}

func (m *mockLedger) WriteData(
	ctx context.Context, addr solana.PublicKey, data []byte,
) error {
	args := m.Called(ctx, addr, data)
	return args.Error(0)
}

func (m *mockLedger) CreateAccount(
	ctx context.Context, createArgs ports.CreateAccountArgs, signer *domain.Signer,
) error {
	args := m.Called(ctx, createArgs, signer)
	return args.Error(0)
}

func (m *mockLedger) Balance(
	ctx context.Context, addr solana.PublicKey,
) (uint64, error) {
	args := m.Called(ctx, addr)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockLedger) Transfer(
	ctx context.Context, intent *domain.TransferIntent,
) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *mockLedger) MinimumBalance(dataSize uint64) uint64 {
	args := m.Called(dataSize)
	return args.Get(0).(uint64)
}
