package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/storageutil/uow"
)

type accountInmemoryStore struct {
	accounts map[solana.PublicKey]*domain.Account
	locker   *sync.RWMutex
}

func newAccountInmemoryStore() *accountInmemoryStore {
	return &accountInmemoryStore{
		accounts: make(map[solana.PublicKey]*domain.Account),
		locker:   &sync.RWMutex{},
	}
}

func (s *accountInmemoryStore) Begin() (uow.Tx, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	snapshot := make(map[solana.PublicKey]*domain.Account, len(s.accounts))
	for k, v := range s.accounts {
		snapshot[k] = v.Copy()
	}
	return &accountTx{s, snapshot}, nil
}

type accountTx struct {
	store    *accountInmemoryStore
	snapshot map[solana.PublicKey]*domain.Account
}

func (t *accountTx) Commit() error {
	return nil
}

func (t *accountTx) Rollback() error {
	t.store.locker.Lock()
	defer t.store.locker.Unlock()

	t.store.accounts = t.snapshot
	return nil
}

type AccountRepositoryImpl struct {
	store *accountInmemoryStore
}

// NewAccountRepositoryImpl returns a new empty AccountRepositoryImpl
func NewAccountRepositoryImpl(store *accountInmemoryStore) domain.AccountRepository {
	return &AccountRepositoryImpl{store}
}

func (r *AccountRepositoryImpl) GetAccount(
	_ context.Context, addr solana.PublicKey,
) (*domain.Account, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	account, ok := r.store.accounts[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr)
	}
	return account.Copy(), nil
}

func (r *AccountRepositoryImpl) UpsertAccounts(
	_ context.Context, accounts ...*domain.Account,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, a := range accounts {
		r.store.accounts[a.Address] = a.Copy()
	}
	return nil
}
