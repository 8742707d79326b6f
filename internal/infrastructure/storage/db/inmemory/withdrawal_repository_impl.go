package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/storageutil/uow"
)

type withdrawalInmemoryStore struct {
	withdrawals map[string]domain.Withdrawal
	locker      *sync.RWMutex
}

func newWithdrawalInmemoryStore() *withdrawalInmemoryStore {
	return &withdrawalInmemoryStore{
		withdrawals: make(map[string]domain.Withdrawal),
		locker:      &sync.RWMutex{},
	}
}

func (s *withdrawalInmemoryStore) Begin() (uow.Tx, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	snapshot := make(map[string]domain.Withdrawal, len(s.withdrawals))
	for k, v := range s.withdrawals {
		snapshot[k] = v
	}
	return &withdrawalTx{s, snapshot}, nil
}

type withdrawalTx struct {
	store    *withdrawalInmemoryStore
	snapshot map[string]domain.Withdrawal
}

func (t *withdrawalTx) Commit() error {
	return nil
}

func (t *withdrawalTx) Rollback() error {
	t.store.locker.Lock()
	defer t.store.locker.Unlock()

	t.store.withdrawals = t.snapshot
	return nil
}

type WithdrawalRepositoryImpl struct {
	store *withdrawalInmemoryStore
}

// NewWithdrawalRepositoryImpl returns a new empty WithdrawalRepositoryImpl
func NewWithdrawalRepositoryImpl(store *withdrawalInmemoryStore) domain.WithdrawalRepository {
	return &WithdrawalRepositoryImpl{store}
}

func (r *WithdrawalRepositoryImpl) AddWithdrawals(
	_ context.Context, withdrawals []domain.Withdrawal,
) (int, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	count := 0
	for _, w := range withdrawals {
		if _, ok := r.store.withdrawals[w.Key()]; ok {
			continue
		}
		r.store.withdrawals[w.Key()] = w
		count++
	}
	return count, nil
}

func (r *WithdrawalRepositoryImpl) GetWithdrawalsForOwner(
	_ context.Context, owner string, page domain.Page,
) ([]domain.Withdrawal, error) {
	return r.findWithdrawals(func(w domain.Withdrawal) bool {
		return w.Owner == owner
	}, page), nil
}

func (r *WithdrawalRepositoryImpl) GetAllWithdrawals(
	_ context.Context, page domain.Page,
) ([]domain.Withdrawal, error) {
	return r.findWithdrawals(nil, page), nil
}

func (r *WithdrawalRepositoryImpl) findWithdrawals(
	filter func(domain.Withdrawal) bool, page domain.Page,
) []domain.Withdrawal {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	withdrawals := make([]domain.Withdrawal, 0, len(r.store.withdrawals))
	for _, w := range r.store.withdrawals {
		if filter == nil || filter(w) {
			withdrawals = append(withdrawals, w)
		}
	}
	sort.SliceStable(withdrawals, func(i, j int) bool {
		return activityLess(
			withdrawals[i].Timestamp, withdrawals[i].TxID,
			withdrawals[j].Timestamp, withdrawals[j].TxID,
		)
	})

	from, to := pageBounds(len(withdrawals), page)
	return withdrawals[from:to]
}
