package application

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/tdex-network/vault-program/pkg/pda"
)

// Positions of the accounts referenced by every vault instruction.
const (
	userAccountIndex = iota
	userDataAccountIndex
	vaultAccountIndex
	systemProgramAccountIndex

	numOfVaultAccounts
)

// VaultProgram decodes vault instructions and applies them to the ledger.
// Value leaves a vault only through a transfer signed with the vault seeds
// stored in the user account.
type VaultProgram struct {
	programID       solana.PublicKey
	systemProgramID solana.PublicKey
}

// NewVaultProgram returns the program deployed at programID, expecting the
// given system program to be referenced by instructions.
func NewVaultProgram(programID, systemProgramID solana.PublicKey) *VaultProgram {
	return &VaultProgram{programID, systemProgramID}
}

// ProgramID returns the identity of the program.
func (p *VaultProgram) ProgramID() solana.PublicKey {
	return p.programID
}

// Process decodes data and runs the resulting operation against the ledger.
// Any error means the instruction must be rolled back entirely.
func (p *VaultProgram) Process(
	ctx context.Context,
	ledger ports.Ledger,
	accounts []domain.AccountInfo,
	data []byte,
) (domain.Instruction, error) {
	ix, err := domain.DecodeInstruction(data)
	if err != nil {
		return nil, err
	}

	switch i := ix.(type) {
	case domain.DepositInstruction:
		err = p.deposit(ctx, ledger, accounts, i.Amount)
	case domain.WithdrawInstruction:
		err = p.withdraw(ctx, ledger, accounts, i.Amount)
	default:
		err = fmt.Errorf("%w: unsupported instruction %T", domain.ErrInvalidInstruction, ix)
	}
	if err != nil {
		return nil, err
	}
	return ix, nil
}

type vaultAccounts struct {
	user     domain.AccountInfo
	userData domain.AccountInfo
	vault    domain.AccountInfo
}

// validateAccounts runs the checks shared by every instruction and returns
// the accounts along with the bump of the vault derived for the user.
func (p *VaultProgram) validateAccounts(
	accounts []domain.AccountInfo,
) (*vaultAccounts, uint8, error) {
	if len(accounts) < numOfVaultAccounts {
		return nil, 0, fmt.Errorf(
			"%w: expected %d, got %d",
			domain.ErrNotEnoughAccountKeys, numOfVaultAccounts, len(accounts),
		)
	}
	accs := &vaultAccounts{
		user:     accounts[userAccountIndex],
		userData: accounts[userDataAccountIndex],
		vault:    accounts[vaultAccountIndex],
	}
	systemProgram := accounts[systemProgramAccountIndex]

	if !accs.user.IsSigner {
		return nil, 0, fmt.Errorf(
			"%w: user %s must sign the transaction",
			domain.ErrMissingSignature, accs.user.Key,
		)
	}
	if !systemProgram.Key.Equals(p.systemProgramID) {
		return nil, 0, fmt.Errorf(
			"%w: got %s", domain.ErrInvalidProgramReference, systemProgram.Key,
		)
	}

	vault, vaultBump, err := domain.FindVaultAddress(accs.user.Key, p.programID)
	if err != nil {
		return nil, 0, err
	}
	if !accs.vault.Key.Equals(vault) {
		return nil, 0, fmt.Errorf(
			"%w: invalid vault account %s", domain.ErrAddressMismatch, accs.vault.Key,
		)
	}

	return accs, vaultBump, nil
}

func (p *VaultProgram) deposit(
	ctx context.Context,
	ledger ports.Ledger,
	accounts []domain.AccountInfo,
	amount uint64,
) error {
	accs, vaultBump, err := p.validateAccounts(accounts)
	if err != nil {
		return err
	}
	user := accs.user.Key

	userData, userBump, err := domain.FindUserAccountAddress(user, p.programID)
	if err != nil {
		return err
	}
	if !accs.userData.Key.Equals(userData) {
		return fmt.Errorf(
			"%w: invalid user account %s", domain.ErrAddressMismatch, accs.userData.Key,
		)
	}

	account, err := ledger.GetAccount(ctx, userData)
	if err != nil {
		return err
	}
	state, err := domain.UserAccountStateOf(account, p.programID)
	if err != nil {
		return err
	}

	switch s := state.(type) {
	case domain.UninitializedUserAccount:
		if err := p.initUserAccount(
			ctx, ledger, user, userData, userBump, vaultBump, s.Allocated,
		); err != nil {
			return err
		}
	case domain.InitializedUserAccount:
		log.WithField("user", user).Debug("user account already initialized")
	default:
		return fmt.Errorf("%w: unknown user account state %T", domain.ErrMalformed, state)
	}

	intent := domain.NewTransferIntent(user, accs.vault.Key, amount)
	if err := ledger.Transfer(ctx, intent); err != nil {
		return err
	}

	log.WithField("user", user).Infof("deposited %d lamports to vault", amount)
	return nil
}

func (p *VaultProgram) initUserAccount(
	ctx context.Context,
	ledger ports.Ledger,
	user, userData solana.PublicKey,
	userBump, vaultBump uint8,
	allocated bool,
) error {
	if !allocated {
		log.WithField("user", user).Debug("creating user account")

		signer, err := domain.NewUserAccountSigner(p.programID, user, userBump)
		if err != nil {
			return err
		}
		if err := ledger.CreateAccount(ctx, ports.CreateAccountArgs{
			Payer:    user,
			Address:  userData,
			Lamports: ledger.MinimumBalance(domain.UserAccountSize),
			Space:    domain.UserAccountSize,
			Owner:    p.programID,
		}, signer); err != nil {
			return err
		}
	}

	data, err := domain.NewUserAccount(user, userBump, vaultBump).Encode()
	if err != nil {
		return err
	}
	return ledger.WriteData(ctx, userData, data)
}

func (p *VaultProgram) withdraw(
	ctx context.Context,
	ledger ports.Ledger,
	accounts []domain.AccountInfo,
	amount uint64,
) error {
	accs, _, err := p.validateAccounts(accounts)
	if err != nil {
		return err
	}
	user := accs.user.Key

	account, err := ledger.GetAccount(ctx, accs.userData.Key)
	if err != nil {
		return err
	}
	state, err := domain.UserAccountStateOf(account, p.programID)
	if err != nil {
		return err
	}
	initialized, ok := state.(domain.InitializedUserAccount)
	if !ok {
		return fmt.Errorf(
			"%w: %s", domain.ErrAccountNotInitialized, accs.userData.Key,
		)
	}
	record := initialized.Record

	if !record.Owner.Equals(user) {
		return fmt.Errorf(
			"%w: account owned by %s, requested by %s",
			domain.ErrOwnershipMismatch, record.Owner, user,
		)
	}
	if !pda.Verify(
		domain.UserAccountSeeds(record.Owner), record.UserBump,
		p.programID, accs.userData.Key,
	) {
		return fmt.Errorf(
			"%w: invalid user account %s", domain.ErrAddressMismatch, accs.userData.Key,
		)
	}
	if !pda.Verify(
		domain.VaultSeeds(record.Owner), record.VaultBump,
		p.programID, accs.vault.Key,
	) {
		return fmt.Errorf(
			"%w: invalid vault account %s", domain.ErrAddressMismatch, accs.vault.Key,
		)
	}

	intent, err := domain.AuthorizeTransfer(
		p.programID,
		domain.VaultSignerSeeds(record.Owner, record.VaultBump),
		accs.vault.Key, user, amount,
	)
	if err != nil {
		return err
	}
	if err := ledger.Transfer(ctx, intent); err != nil {
		return err
	}

	log.WithField("user", user).Infof("withdrew %d lamports from vault", amount)
	return nil
}
