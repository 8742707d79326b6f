package application

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/tdex-network/vault-program/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/vault-program/pkg/vaultclient"
)

const (
	sol = solana.LAMPORTS_PER_SOL
	// userAccountRent is the rent exempt balance of a user account.
	userAccountRent = uint64(1134480)
)

var (
	ctx       = context.Background()
	programID = solana.MustPublicKeyFromBase58(
		"DPFTib3APrmJaBYjYmVamEpsPiHQ4cSkYLYXiGQmYUja",
	)
)

type testHost struct {
	repo    ports.RepoManager
	program *VaultProgram
	svc     LedgerService
	client  *vaultclient.Client
}

func newTestHost(t *testing.T) *testHost {
	repo := inmemory.NewRepoManager()
	program := NewVaultProgram(programID, solana.SystemProgramID)
	return &testHost{
		repo:    repo,
		program: program,
		svc:     NewLedgerService(repo, program, domain.DefaultRent(), nil),
		client:  vaultclient.New(programID),
	}
}

// newFundedUser returns a new key holding the given lamports.
func (h *testHost) newFundedUser(t *testing.T, lamports uint64) solana.PrivateKey {
	key := solana.NewWallet().PrivateKey
	require.NoError(t, h.svc.Airdrop(ctx, key.PublicKey(), lamports))
	return key
}

func (h *testHost) deposit(
	t *testing.T, key solana.PrivateKey, lamports uint64,
) (*Receipt, error) {
	tx, err := h.client.NewDepositTransaction(key, lamports)
	require.NoError(t, err)
	return h.svc.SendTransaction(ctx, tx)
}

func (h *testHost) withdraw(
	t *testing.T, key solana.PrivateKey, lamports uint64,
) (*Receipt, error) {
	tx, err := h.client.NewWithdrawTransaction(key, lamports)
	require.NoError(t, err)
	return h.svc.SendTransaction(ctx, tx)
}

func (h *testHost) balance(t *testing.T, addr solana.PublicKey) uint64 {
	balance, err := h.svc.GetBalance(ctx, addr)
	require.NoError(t, err)
	return balance
}

func (h *testHost) addresses(
	t *testing.T, owner solana.PublicKey,
) *vaultclient.Addresses {
	addresses, err := h.client.Derive(owner)
	require.NoError(t, err)
	return addresses
}

// sendRaw signs and submits an instruction with hand picked accounts.
func (h *testHost) sendRaw(
	t *testing.T,
	key solana.PrivateKey,
	ix domain.Instruction,
	accounts []domain.AccountMeta,
) (*Receipt, error) {
	data, err := domain.EncodeInstruction(ix)
	require.NoError(t, err)
	msg, err := domain.NewMessage(programID, accounts, data)
	require.NoError(t, err)
	tx, err := domain.NewTransaction(msg, key)
	require.NoError(t, err)
	return h.svc.SendTransaction(ctx, tx)
}

func vaultAccountMetas(owner, userAccount, vault solana.PublicKey) []domain.AccountMeta {
	return []domain.AccountMeta{
		{PublicKey: owner, IsSigner: true, IsWritable: true},
		{PublicKey: userAccount, IsWritable: true},
		{PublicKey: vault, IsWritable: true},
		{PublicKey: solana.SystemProgramID},
	}
}

func vaultAccountInfos(owner, userAccount, vault solana.PublicKey) []domain.AccountInfo {
	metas := vaultAccountMetas(owner, userAccount, vault)
	infos := make([]domain.AccountInfo, 0, len(metas))
	for _, m := range metas {
		infos = append(infos, domain.AccountInfo{
			Key: m.PublicKey, IsSigner: m.IsSigner, IsWritable: m.IsWritable,
		})
	}
	return infos
}
