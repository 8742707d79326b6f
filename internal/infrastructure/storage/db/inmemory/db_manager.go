package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/tdex-network/vault-program/internal/storageutil/uow"
)

// RepoManager keeps accounts and activity in memory. Write transactions are
// serialized and each store is snapshotted when one begins, so that a failing
// transaction leaves no trace.
type RepoManager struct {
	accountStore    *accountInmemoryStore
	depositStore    *depositInmemoryStore
	withdrawalStore *withdrawalInmemoryStore

	accountRepository    domain.AccountRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository

	unitOfWork *uow.UnitOfWork
	txLock     *sync.Mutex
}

func NewRepoManager() ports.RepoManager {
	accountStore := newAccountInmemoryStore()
	depositStore := newDepositInmemoryStore()
	withdrawalStore := newWithdrawalInmemoryStore()

	return &RepoManager{
		accountStore:         accountStore,
		depositStore:         depositStore,
		withdrawalStore:      withdrawalStore,
		accountRepository:    NewAccountRepositoryImpl(accountStore),
		depositRepository:    NewDepositRepositoryImpl(depositStore),
		withdrawalRepository: NewWithdrawalRepositoryImpl(withdrawalStore),
		unitOfWork:           uow.NewUnitOfWork(accountStore, depositStore, withdrawalStore),
		txLock:               &sync.Mutex{},
	}
}

func (r *RepoManager) AccountRepository() domain.AccountRepository {
	return r.accountRepository
}

func (r *RepoManager) DepositRepository() domain.DepositRepository {
	return r.depositRepository
}

func (r *RepoManager) WithdrawalRepository() domain.WithdrawalRepository {
	return r.withdrawalRepository
}

func (r *RepoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	// Read only transactions and the ones nested into an already running
	// transaction just run the handler.
	if _, ok := uow.TxFromContext(ctx, r.accountStore); ok || readOnly {
		return handler(ctx)
	}

	r.txLock.Lock()
	defer r.txLock.Unlock()

	var res interface{}
	if err := r.unitOfWork.Run(ctx, func(ctx context.Context) error {
		var err error
		res, err = handler(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *RepoManager) Close() {}
