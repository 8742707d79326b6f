package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/storageutil/uow"
)

type depositInmemoryStore struct {
	deposits map[string]domain.Deposit
	locker   *sync.RWMutex
}

func newDepositInmemoryStore() *depositInmemoryStore {
	return &depositInmemoryStore{
		deposits: make(map[string]domain.Deposit),
		locker:   &sync.RWMutex{},
	}
}

func (s *depositInmemoryStore) Begin() (uow.Tx, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	snapshot := make(map[string]domain.Deposit, len(s.deposits))
	for k, v := range s.deposits {
		snapshot[k] = v
	}
	return &depositTx{s, snapshot}, nil
}

type depositTx struct {
	store    *depositInmemoryStore
	snapshot map[string]domain.Deposit
}

func (t *depositTx) Commit() error {
	return nil
}

func (t *depositTx) Rollback() error {
	t.store.locker.Lock()
	defer t.store.locker.Unlock()

	t.store.deposits = t.snapshot
	return nil
}

type DepositRepositoryImpl struct {
	store *depositInmemoryStore
}

// NewDepositRepositoryImpl returns a new empty DepositRepositoryImpl
func NewDepositRepositoryImpl(store *depositInmemoryStore) domain.DepositRepository {
	return &DepositRepositoryImpl{store}
}

func (r *DepositRepositoryImpl) AddDeposits(
	_ context.Context, deposits []domain.Deposit,
) (int, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	count := 0
	for _, d := range deposits {
		if _, ok := r.store.deposits[d.Key()]; ok {
			continue
		}
		r.store.deposits[d.Key()] = d
		count++
	}
	return count, nil
}

func (r *DepositRepositoryImpl) GetDepositsForOwner(
	_ context.Context, owner string, page domain.Page,
) ([]domain.Deposit, error) {
	return r.findDeposits(func(d domain.Deposit) bool {
		return d.Owner == owner
	}, page), nil
}

func (r *DepositRepositoryImpl) GetAllDeposits(
	_ context.Context, page domain.Page,
) ([]domain.Deposit, error) {
	return r.findDeposits(nil, page), nil
}

func (r *DepositRepositoryImpl) findDeposits(
	filter func(domain.Deposit) bool, page domain.Page,
) []domain.Deposit {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	deposits := make([]domain.Deposit, 0, len(r.store.deposits))
	for _, d := range r.store.deposits {
		if filter == nil || filter(d) {
			deposits = append(deposits, d)
		}
	}
	sort.SliceStable(deposits, func(i, j int) bool {
		return activityLess(
			deposits[i].Timestamp, deposits[i].TxID,
			deposits[j].Timestamp, deposits[j].TxID,
		)
	})

	from, to := pageBounds(len(deposits), page)
	return deposits[from:to]
}
