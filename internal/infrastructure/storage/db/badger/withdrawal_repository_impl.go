package dbbadger

import (
	"context"

	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type withdrawalRepositoryImpl struct {
	store *badgerhold.Store
}

// NewWithdrawalRepositoryImpl initialize a badger implementation of the
// domain.WithdrawalRepository
func NewWithdrawalRepositoryImpl(store *badgerhold.Store) domain.WithdrawalRepository {
	return withdrawalRepositoryImpl{store}
}

func (w withdrawalRepositoryImpl) AddWithdrawals(
	ctx context.Context, withdrawals []domain.Withdrawal,
) (int, error) {
	count := 0
	for _, withdrawal := range withdrawals {
		done, err := w.insertWithdrawal(ctx, withdrawal)
		if err != nil {
			return -1, err
		}
		if done {
			count++
		}
	}
	return count, nil
}

func (w withdrawalRepositoryImpl) GetWithdrawalsForOwner(
	ctx context.Context, owner string, page domain.Page,
) ([]domain.Withdrawal, error) {
	query := badgerhold.Where("Owner").Eq(owner)
	return w.findWithdrawals(ctx, query, page)
}

func (w withdrawalRepositoryImpl) GetAllWithdrawals(
	ctx context.Context, page domain.Page,
) ([]domain.Withdrawal, error) {
	return w.findWithdrawals(ctx, &badgerhold.Query{}, page)
}

func (w withdrawalRepositoryImpl) findWithdrawals(
	ctx context.Context, query *badgerhold.Query, page domain.Page,
) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal
	var err error

	query = query.SortBy("Timestamp", "TxID")
	if tx := txFromContext(ctx); tx != nil {
		err = w.store.TxFind(tx, &withdrawals, query)
	} else {
		err = w.store.Find(&withdrawals, query)
	}
	if err != nil {
		return nil, err
	}

	from, to := pageBounds(len(withdrawals), page)
	return withdrawals[from:to], nil
}

func (w withdrawalRepositoryImpl) insertWithdrawal(
	ctx context.Context, withdrawal domain.Withdrawal,
) (bool, error) {
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = w.store.TxInsert(tx, withdrawal.Key(), &withdrawal)
	} else {
		err = w.store.Insert(withdrawal.Key(), &withdrawal)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
