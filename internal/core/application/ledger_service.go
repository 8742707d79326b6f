package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/tdex-network/vault-program/pkg/stats"
)

// Receipt is returned for every applied transaction.
type Receipt struct {
	TxID        string
	Instruction domain.Instruction
}

// UserAccountInfo gathers the state of a user of the vault program.
type UserAccountInfo struct {
	Owner          solana.PublicKey
	UserAccount    solana.PublicKey
	Vault          solana.PublicKey
	Record         *domain.UserAccount
	OwnerBalance   uint64
	VaultBalance   uint64
	AccountBalance uint64
}

// LedgerService is the host running the vault program: it verifies and
// applies transactions atomically and exposes the resulting ledger state.
type LedgerService interface {
	ProgramID() solana.PublicKey
	SendTransaction(ctx context.Context, tx *domain.Transaction) (*Receipt, error)
	Airdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) error
	GetAccount(ctx context.Context, addr solana.PublicKey) (*domain.Account, error)
	GetBalance(ctx context.Context, addr solana.PublicKey) (uint64, error)
	GetUserAccountInfo(
		ctx context.Context, owner solana.PublicKey,
	) (*UserAccountInfo, error)
	ListDeposits(
		ctx context.Context, owner solana.PublicKey, page domain.Page,
	) ([]domain.Deposit, error)
	ListWithdrawals(
		ctx context.Context, owner solana.PublicKey, page domain.Page,
	) ([]domain.Withdrawal, error)
}

type ledgerService struct {
	repoManager ports.RepoManager
	program     *VaultProgram
	rent        domain.Rent
	stats       *stats.Collector
	now         func() time.Time
}

// NewLedgerService returns a host for program storing its state with
// repoManager. statsCollector is optional.
func NewLedgerService(
	repoManager ports.RepoManager,
	program *VaultProgram,
	rent domain.Rent,
	statsCollector *stats.Collector,
) LedgerService {
	if statsCollector == nil {
		statsCollector, _ = stats.NewCollector(nil)
	}
	return &ledgerService{
		repoManager: repoManager,
		program:     program,
		rent:        rent,
		stats:       statsCollector,
		now:         time.Now,
	}
}

func (s *ledgerService) ProgramID() solana.PublicKey {
	return s.program.ProgramID()
}

func (s *ledgerService) SendTransaction(
	ctx context.Context, tx *domain.Transaction,
) (*Receipt, error) {
	if tx == nil {
		return nil, domain.ErrInvalidTransaction
	}
	if err := tx.Verify(); err != nil {
		return nil, err
	}
	if !tx.Message.ProgramID.Equals(s.program.ProgramID()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProgram, tx.Message.ProgramID)
	}

	txID := tx.ID()
	accounts := tx.AccountInfos()
	operation := operationOf(tx.Message.Data)

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			ledger := newInvocationLedger(
				s.repoManager.AccountRepository(), s.program.ProgramID(),
				s.rent, accounts,
			)
			ix, err := s.program.Process(ctx, ledger, accounts, tx.Message.Data)
			if err != nil {
				return nil, err
			}
			if err := s.recordActivity(ctx, txID, accounts, ix); err != nil {
				return nil, err
			}
			return ix, nil
		},
	)
	if err != nil {
		s.stats.ObserveInstruction(operation, stats.OutcomeRejected)
		log.WithError(err).WithField("tx", txID).Warnf("%s rejected", operation)
		return nil, err
	}

	ix := res.(domain.Instruction)
	s.stats.ObserveInstruction(operation, stats.OutcomeApplied)
	s.stats.ObserveLamports(operation, ix.Lamports())
	log.WithField("tx", txID).Debugf("%s applied", operation)

	return &Receipt{TxID: txID, Instruction: ix}, nil
}

func (s *ledgerService) Airdrop(
	ctx context.Context, addr solana.PublicKey, lamports uint64,
) error {
	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			repo := s.repoManager.AccountRepository()
			account, err := repo.GetAccount(ctx, addr)
			if err != nil {
				if !errors.Is(err, domain.ErrAccountNotFound) {
					return nil, err
				}
				account = domain.NewSystemAccount(addr)
			}
			if account.Lamports > ^uint64(0)-lamports {
				return nil, domain.ErrArithmeticOverflow
			}
			account.Lamports += lamports
			return nil, repo.UpsertAccounts(ctx, account)
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("airdropped %d lamports to %s", lamports, addr)
	return nil
}

func (s *ledgerService) GetAccount(
	ctx context.Context, addr solana.PublicKey,
) (*domain.Account, error) {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.NewSystemAccount(addr), nil
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) GetBalance(
	ctx context.Context, addr solana.PublicKey,
) (uint64, error) {
	account, err := s.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return account.Lamports, nil
}

func (s *ledgerService) GetUserAccountInfo(
	ctx context.Context, owner solana.PublicKey,
) (*UserAccountInfo, error) {
	programID := s.program.ProgramID()
	userAccount, _, err := domain.FindUserAccountAddress(owner, programID)
	if err != nil {
		return nil, err
	}
	vault, _, err := domain.FindVaultAddress(owner, programID)
	if err != nil {
		return nil, err
	}

	info := &UserAccountInfo{
		Owner:       owner,
		UserAccount: userAccount,
		Vault:       vault,
	}

	account, err := s.GetAccount(ctx, userAccount)
	if err != nil {
		return nil, err
	}
	state, err := domain.UserAccountStateOf(account, programID)
	if err != nil {
		return nil, err
	}
	if initialized, ok := state.(domain.InitializedUserAccount); ok {
		record := initialized.Record
		info.Record = &record
	}
	info.AccountBalance = account.Lamports

	if info.OwnerBalance, err = s.GetBalance(ctx, owner); err != nil {
		return nil, err
	}
	if info.VaultBalance, err = s.GetBalance(ctx, vault); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *ledgerService) ListDeposits(
	ctx context.Context, owner solana.PublicKey, page domain.Page,
) ([]domain.Deposit, error) {
	return s.repoManager.DepositRepository().GetDepositsForOwner(
		ctx, owner.String(), page,
	)
}

func (s *ledgerService) ListWithdrawals(
	ctx context.Context, owner solana.PublicKey, page domain.Page,
) ([]domain.Withdrawal, error) {
	return s.repoManager.WithdrawalRepository().GetWithdrawalsForOwner(
		ctx, owner.String(), page,
	)
}

func (s *ledgerService) recordActivity(
	ctx context.Context,
	txID string,
	accounts []domain.AccountInfo,
	ix domain.Instruction,
) error {
	owner := accounts[userAccountIndex].Key.String()
	vault := accounts[vaultAccountIndex].Key.String()
	timestamp := s.now().Unix()

	switch i := ix.(type) {
	case domain.DepositInstruction:
		_, err := s.repoManager.DepositRepository().AddDeposits(
			ctx, []domain.Deposit{{
				TxID:      txID,
				Owner:     owner,
				Vault:     vault,
				Amount:    i.Amount,
				Timestamp: timestamp,
			}},
		)
		return err
	case domain.WithdrawInstruction:
		_, err := s.repoManager.WithdrawalRepository().AddWithdrawals(
			ctx, []domain.Withdrawal{{
				TxID:      txID,
				Owner:     owner,
				Vault:     vault,
				Amount:    i.Amount,
				Timestamp: timestamp,
			}},
		)
		return err
	default:
		return nil
	}
}

func operationOf(data []byte) string {
	if len(data) <= 0 {
		return "unknown"
	}
	return domain.InstructionTag(data[0]).String()
}
