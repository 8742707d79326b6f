package application

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/tdex-network/vault-program/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/vault-program/pkg/pda"
)

func TestInvocationLedgerTransfer(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	vault, vaultBump, err := domain.FindVaultAddress(owner, programID)
	require.NoError(t, err)
	otherProgram := solana.NewWallet().PublicKey()
	_, otherBump, err := pda.FindProgramAddress(domain.VaultSeeds(owner), otherProgram)
	require.NoError(t, err)
	otherProgramSigner, err := domain.NewSigner(
		otherProgram, domain.VaultSignerSeeds(owner, otherBump),
	)
	require.NoError(t, err)

	vaultSigner, err := domain.NewSigner(
		programID, domain.VaultSignerSeeds(owner, vaultBump),
	)
	require.NoError(t, err)

	tests := []struct {
		name          string
		accounts      []domain.AccountInfo
		intent        func() *domain.TransferIntent
		expectedError error
	}{
		{
			name: "signed by source",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				return domain.NewTransferIntent(owner, vault, sol)
			},
		},
		{
			name: "source did not sign",
			accounts: []domain.AccountInfo{
				{Key: owner, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				return domain.NewTransferIntent(owner, vault, sol)
			},
			expectedError: domain.ErrMissingSignature,
		},
		{
			name: "signed by program derived address seeds",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				return &domain.TransferIntent{
					From: vault, To: owner, Amount: sol, Signer: vaultSigner,
				}
			},
		},
		{
			name: "program derived address without seeds",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				return domain.NewTransferIntent(vault, owner, sol)
			},
			expectedError: domain.ErrMissingSignature,
		},
		{
			name: "seeds of another program",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				return &domain.TransferIntent{
					From: vault, To: owner, Amount: sol, Signer: otherProgramSigner,
				}
			},
			expectedError: domain.ErrMissingSignature,
		},
		{
			name: "seeds of another address",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				_, userBump, _ := domain.FindUserAccountAddress(owner, programID)
				signer, _ := domain.NewUserAccountSigner(programID, owner, userBump)
				return &domain.TransferIntent{
					From: vault, To: owner, Amount: sol, Signer: signer,
				}
			},
			expectedError: domain.ErrMissingSignature,
		},
		{
			name: "readonly destination",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault},
			},
			intent: func() *domain.TransferIntent {
				return domain.NewTransferIntent(owner, vault, sol)
			},
			expectedError: domain.ErrReadonlyAccount,
		},
		{
			name: "overdraw",
			accounts: []domain.AccountInfo{
				{Key: owner, IsSigner: true, IsWritable: true},
				{Key: vault, IsWritable: true},
			},
			intent: func() *domain.TransferIntent {
				return domain.NewTransferIntent(owner, vault, 11*sol)
			},
			expectedError: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := inmemory.NewRepoManager().AccountRepository()
			require.NoError(t, repo.UpsertAccounts(ctx,
				&domain.Account{Address: owner, Owner: solana.SystemProgramID, Lamports: 10 * sol},
				&domain.Account{Address: vault, Owner: solana.SystemProgramID, Lamports: 10 * sol},
			))

			ledger := newInvocationLedger(repo, programID, domain.DefaultRent(), tt.accounts)
			intent := tt.intent()
			err := ledger.Transfer(ctx, intent)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)

				fromBalance, err := ledger.Balance(ctx, intent.From)
				require.NoError(t, err)
				require.Equal(t, 10*sol, fromBalance)
				return
			}
			require.NoError(t, err)

			fromBalance, err := ledger.Balance(ctx, intent.From)
			require.NoError(t, err)
			require.Equal(t, 9*sol, fromBalance)
			toBalance, err := ledger.Balance(ctx, intent.To)
			require.NoError(t, err)
			require.Equal(t, 11*sol, toBalance)
		})
	}
}

func TestInvocationLedgerTransferToSelf(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	repo := inmemory.NewRepoManager().AccountRepository()
	require.NoError(t, repo.UpsertAccounts(ctx, &domain.Account{
		Address: owner, Owner: solana.SystemProgramID, Lamports: sol,
	}))

	ledger := newInvocationLedger(repo, programID, domain.DefaultRent(), []domain.AccountInfo{
		{Key: owner, IsSigner: true, IsWritable: true},
	})
	require.NoError(t, ledger.Transfer(ctx, domain.NewTransferIntent(owner, owner, sol)))

	balance, err := ledger.Balance(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, sol, balance)
}

func TestInvocationLedgerCreateAndWrite(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	userAccount, userBump, err := domain.FindUserAccountAddress(owner, programID)
	require.NoError(t, err)
	signer, err := domain.NewUserAccountSigner(programID, owner, userBump)
	require.NoError(t, err)

	accounts := []domain.AccountInfo{
		{Key: owner, IsSigner: true, IsWritable: true},
		{Key: userAccount, IsWritable: true},
	}
	args := ports.CreateAccountArgs{
		Payer:    owner,
		Address:  userAccount,
		Lamports: userAccountRent,
		Space:    domain.UserAccountSize,
		Owner:    programID,
	}

	newLedger := func(t *testing.T, accounts []domain.AccountInfo) ports.Ledger {
		repo := inmemory.NewRepoManager().AccountRepository()
		require.NoError(t, repo.UpsertAccounts(ctx, &domain.Account{
			Address: owner, Owner: solana.SystemProgramID, Lamports: sol,
		}))
		return newInvocationLedger(repo, programID, domain.DefaultRent(), accounts)
	}

	t.Run("minimum_balance", func(t *testing.T) {
		ledger := newLedger(t, accounts)
		require.Equal(t, uint64(890880), ledger.MinimumBalance(0))
		require.Equal(t, userAccountRent, ledger.MinimumBalance(domain.UserAccountSize))
	})

	t.Run("create_then_write", func(t *testing.T) {
		ledger := newLedger(t, accounts)
		require.NoError(t, ledger.CreateAccount(ctx, args, signer))

		account, err := ledger.GetAccount(ctx, userAccount)
		require.NoError(t, err)
		require.Equal(t, programID, account.Owner)
		require.Equal(t, userAccountRent, account.Lamports)
		require.Equal(t, make([]byte, domain.UserAccountSize), account.Data)

		balance, err := ledger.Balance(ctx, owner)
		require.NoError(t, err)
		require.Equal(t, sol-userAccountRent, balance)

		err = ledger.CreateAccount(ctx, args, signer)
		require.ErrorIs(t, err, domain.ErrAccountAlreadyInUse)

		data, err := domain.NewUserAccount(owner, userBump, 0).Encode()
		require.NoError(t, err)
		require.NoError(t, ledger.WriteData(ctx, userAccount, data))

		account, err = ledger.GetAccount(ctx, userAccount)
		require.NoError(t, err)
		require.Equal(t, data, account.Data)

		err = ledger.WriteData(ctx, userAccount, data[:10])
		require.ErrorIs(t, err, domain.ErrInvalidAccountDataLength)

		// The program derived account holds data: it can't be a transfer
		// source.
		intent := &domain.TransferIntent{
			From: userAccount, To: owner, Amount: 1, Signer: signer,
		}
		err = ledger.Transfer(ctx, intent)
		require.ErrorIs(t, err, domain.ErrIllegalOwner)
	})

	t.Run("create_without_seeds", func(t *testing.T) {
		ledger := newLedger(t, accounts)
		err := ledger.CreateAccount(ctx, args, nil)
		require.ErrorIs(t, err, domain.ErrMissingSignature)
	})

	t.Run("create_without_payer_signature", func(t *testing.T) {
		ledger := newLedger(t, []domain.AccountInfo{
			{Key: owner, IsWritable: true},
			{Key: userAccount, IsWritable: true},
		})
		err := ledger.CreateAccount(ctx, args, signer)
		require.ErrorIs(t, err, domain.ErrMissingSignature)
	})

	t.Run("create_readonly", func(t *testing.T) {
		ledger := newLedger(t, []domain.AccountInfo{
			{Key: owner, IsSigner: true, IsWritable: true},
			{Key: userAccount},
		})
		err := ledger.CreateAccount(ctx, args, signer)
		require.ErrorIs(t, err, domain.ErrReadonlyAccount)
	})

	t.Run("create_without_funds", func(t *testing.T) {
		ledger := newLedger(t, accounts)
		tooMuch := args
		tooMuch.Lamports = 2 * sol
		err := ledger.CreateAccount(ctx, tooMuch, signer)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("create_prefunded", func(t *testing.T) {
		tests := []struct {
			name            string
			prefunded       uint64
			expectedPaid    uint64
			expectedBalance uint64
		}{
			{"one_lamport", 1, userAccountRent - 1, userAccountRent},
			{"exact", userAccountRent, 0, userAccountRent},
			{"over_funded", 2 * userAccountRent, 0, 2 * userAccountRent},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				repo := inmemory.NewRepoManager().AccountRepository()
				require.NoError(t, repo.UpsertAccounts(ctx, &domain.Account{
					Address: owner, Owner: solana.SystemProgramID, Lamports: sol,
				}, &domain.Account{
					Address:  userAccount,
					Owner:    solana.SystemProgramID,
					Lamports: tt.prefunded,
				}))
				ledger := newInvocationLedger(
					repo, programID, domain.DefaultRent(), accounts,
				)

				require.NoError(t, ledger.CreateAccount(ctx, args, signer))

				account, err := ledger.GetAccount(ctx, userAccount)
				require.NoError(t, err)
				require.Equal(t, programID, account.Owner)
				require.Equal(t, tt.expectedBalance, account.Lamports)
				require.Len(t, account.Data, domain.UserAccountSize)

				balance, err := ledger.Balance(ctx, owner)
				require.NoError(t, err)
				require.Equal(t, sol-tt.expectedPaid, balance)
			})
		}
	})

	t.Run("create_prefunded_without_funds", func(t *testing.T) {
		repo := inmemory.NewRepoManager().AccountRepository()
		require.NoError(t, repo.UpsertAccounts(ctx, &domain.Account{
			Address: owner, Owner: solana.SystemProgramID, Lamports: 10,
		}, &domain.Account{
			Address: userAccount, Owner: solana.SystemProgramID, Lamports: 1,
		}))
		ledger := newInvocationLedger(repo, programID, domain.DefaultRent(), accounts)

		err := ledger.CreateAccount(ctx, args, signer)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("create_with_data", func(t *testing.T) {
		repo := inmemory.NewRepoManager().AccountRepository()
		require.NoError(t, repo.UpsertAccounts(ctx, &domain.Account{
			Address: owner, Owner: solana.SystemProgramID, Lamports: sol,
		}, &domain.Account{
			Address:  userAccount,
			Owner:    solana.SystemProgramID,
			Lamports: 1,
			Data:     []byte{1},
		}))
		ledger := newInvocationLedger(repo, programID, domain.DefaultRent(), accounts)

		err := ledger.CreateAccount(ctx, args, signer)
		require.ErrorIs(t, err, domain.ErrAccountAlreadyInUse)
	})

	t.Run("write_not_owned", func(t *testing.T) {
		ledger := newLedger(t, accounts)
		err := ledger.WriteData(ctx, owner, nil)
		require.ErrorIs(t, err, domain.ErrIllegalOwner)
	})

	t.Run("write_readonly", func(t *testing.T) {
		ledger := newLedger(t, []domain.AccountInfo{
			{Key: owner, IsSigner: true, IsWritable: true},
			{Key: userAccount},
		})
		err := ledger.WriteData(ctx, userAccount, make([]byte, domain.UserAccountSize))
		require.ErrorIs(t, err, domain.ErrReadonlyAccount)
	})
}
