package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/tdex-network/vault-program/pkg/pda"
)

// invocationLedger is the ledger seen by a program while processing one
// instruction. It enforces the host rules: only transaction signers, or
// derived addresses whose seeds the invoking program proves, can spend or be
// allocated; only accounts declared writable can change; only the owner
// program can write data.
type invocationLedger struct {
	repo     domain.AccountRepository
	program  solana.PublicKey
	rent     domain.Rent
	signers  map[solana.PublicKey]bool
	writable map[solana.PublicKey]bool
}

func newInvocationLedger(
	repo domain.AccountRepository,
	program solana.PublicKey,
	rent domain.Rent,
	accounts []domain.AccountInfo,
) ports.Ledger {
	signers := make(map[solana.PublicKey]bool)
	writable := make(map[solana.PublicKey]bool)
	for _, a := range accounts {
		if a.IsSigner {
			signers[a.Key] = true
		}
		if a.IsWritable {
			writable[a.Key] = true
		}
	}
	return &invocationLedger{repo, program, rent, signers, writable}
}

func (l *invocationLedger) GetAccount(
	ctx context.Context, addr solana.PublicKey,
) (*domain.Account, error) {
	account, err := l.repo.GetAccount(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.NewSystemAccount(addr), nil
		}
		return nil, err
	}
	return account, nil
}

func (l *invocationLedger) WriteData(
	ctx context.Context, addr solana.PublicKey, data []byte,
) error {
	if !l.writable[addr] {
		return fmt.Errorf("%w: %s", domain.ErrReadonlyAccount, addr)
	}

	account, err := l.GetAccount(ctx, addr)
	if err != nil {
		return err
	}
	if !account.IsOwnedBy(l.program) {
		return fmt.Errorf(
			"%w: %s is owned by %s", domain.ErrIllegalOwner, addr, account.Owner,
		)
	}
	if len(data) != len(account.Data) {
		return fmt.Errorf(
			"%w: account has %d bytes, got %d",
			domain.ErrInvalidAccountDataLength, len(account.Data), len(data),
		)
	}

	account.Data = append([]byte{}, data...)
	return l.repo.UpsertAccounts(ctx, account)
}

func (l *invocationLedger) CreateAccount(
	ctx context.Context, args ports.CreateAccountArgs, signer *domain.Signer,
) error {
	if !l.writable[args.Payer] || !l.writable[args.Address] {
		return fmt.Errorf("%w: payer and new account must be writable", domain.ErrReadonlyAccount)
	}
	if !l.signers[args.Payer] {
		return fmt.Errorf("%w: payer %s", domain.ErrMissingSignature, args.Payer)
	}
	if err := l.authorize(args.Address, signer); err != nil {
		return err
	}

	payer, err := l.GetAccount(ctx, args.Payer)
	if err != nil {
		return err
	}
	account, err := l.GetAccount(ctx, args.Address)
	if err != nil {
		return err
	}
	if !account.IsAssignable() {
		return fmt.Errorf("%w: %s", domain.ErrAccountAlreadyInUse, args.Address)
	}
	if !payer.IsOwnedBy(solana.SystemProgramID) || len(payer.Data) > 0 {
		return fmt.Errorf("%w: payer %s must be a system account", domain.ErrIllegalOwner, args.Payer)
	}

	// Lamports already sent to the address count towards its funding.
	var shortfall uint64
	if account.Lamports < args.Lamports {
		shortfall = args.Lamports - account.Lamports
	}
	if payer.Lamports < shortfall {
		return fmt.Errorf(
			"%w: payer has %d lamports, needs %d",
			domain.ErrInsufficientFunds, payer.Lamports, shortfall,
		)
	}

	payer.Lamports -= shortfall
	account.Lamports += shortfall
	account.Owner = args.Owner
	account.Data = make([]byte, args.Space)

	return l.repo.UpsertAccounts(ctx, payer, account)
}

func (l *invocationLedger) Balance(
	ctx context.Context, addr solana.PublicKey,
) (uint64, error) {
	account, err := l.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return account.Lamports, nil
}

func (l *invocationLedger) Transfer(
	ctx context.Context, intent *domain.TransferIntent,
) error {
	if intent == nil {
		return fmt.Errorf("%w: missing transfer", domain.ErrInvalidInstruction)
	}
	if !l.writable[intent.From] || !l.writable[intent.To] {
		return fmt.Errorf("%w: transfer accounts must be writable", domain.ErrReadonlyAccount)
	}
	if err := l.authorize(intent.From, intent.Signer); err != nil {
		return err
	}

	from, err := l.GetAccount(ctx, intent.From)
	if err != nil {
		return err
	}
	if !from.IsOwnedBy(solana.SystemProgramID) || len(from.Data) > 0 {
		return fmt.Errorf(
			"%w: transfer source %s must be a system account without data",
			domain.ErrIllegalOwner, intent.From,
		)
	}
	if from.Lamports < intent.Amount {
		return fmt.Errorf(
			"%w: %s has %d lamports, needs %d",
			domain.ErrInsufficientFunds, intent.From, from.Lamports, intent.Amount,
		)
	}
	if intent.From.Equals(intent.To) {
		return nil
	}

	to, err := l.GetAccount(ctx, intent.To)
	if err != nil {
		return err
	}
	if to.Lamports > ^uint64(0)-intent.Amount {
		return fmt.Errorf("%w: balance of %s", domain.ErrArithmeticOverflow, intent.To)
	}

	from.Lamports -= intent.Amount
	to.Lamports += intent.Amount

	return l.repo.UpsertAccounts(ctx, from, to)
}

func (l *invocationLedger) MinimumBalance(dataSize uint64) uint64 {
	return l.rent.MinimumBalance(dataSize)
}

// authorize checks that addr either signed the transaction or is the
// derived address the signer seeds prove under the invoking program.
func (l *invocationLedger) authorize(
	addr solana.PublicKey, signer *domain.Signer,
) error {
	if l.signers[addr] {
		return nil
	}
	if signer == nil {
		return fmt.Errorf("%w: %s", domain.ErrMissingSignature, addr)
	}
	if !signer.Program().Equals(l.program) {
		return fmt.Errorf(
			"%w: signer derived for program %s, invoked by %s",
			domain.ErrMissingSignature, signer.Program(), l.program,
		)
	}
	derived, err := pda.CreateProgramAddress(signer.Seeds(), l.program)
	if err != nil || !derived.Equals(addr) {
		return fmt.Errorf("%w: seeds do not sign for %s", domain.ErrMissingSignature, addr)
	}
	return nil
}
