package dbbadger

import (
	"context"

	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type depositRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDepositRepositoryImpl initialize a badger implementation of the
// domain.DepositRepository
func NewDepositRepositoryImpl(store *badgerhold.Store) domain.DepositRepository {
	return depositRepositoryImpl{store}
}

func (d depositRepositoryImpl) AddDeposits(
	ctx context.Context, deposits []domain.Deposit,
) (int, error) {
	count := 0
	for _, deposit := range deposits {
		done, err := d.insertDeposit(ctx, deposit)
		if err != nil {
			return -1, err
		}
		if done {
			count++
		}
	}
	return count, nil
}

func (d depositRepositoryImpl) GetDepositsForOwner(
	ctx context.Context, owner string, page domain.Page,
) ([]domain.Deposit, error) {
	query := badgerhold.Where("Owner").Eq(owner)
	return d.findDeposits(ctx, query, page)
}

func (d depositRepositoryImpl) GetAllDeposits(
	ctx context.Context, page domain.Page,
) ([]domain.Deposit, error) {
	return d.findDeposits(ctx, &badgerhold.Query{}, page)
}

func (d depositRepositoryImpl) findDeposits(
	ctx context.Context, query *badgerhold.Query, page domain.Page,
) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	var err error

	query = query.SortBy("Timestamp", "TxID")
	if tx := txFromContext(ctx); tx != nil {
		err = d.store.TxFind(tx, &deposits, query)
	} else {
		err = d.store.Find(&deposits, query)
	}
	if err != nil {
		return nil, err
	}

	from, to := pageBounds(len(deposits), page)
	return deposits[from:to], nil
}

func (d depositRepositoryImpl) insertDeposit(
	ctx context.Context, deposit domain.Deposit,
) (bool, error) {
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = d.store.TxInsert(tx, deposit.Key(), &deposit)
	} else {
		err = d.store.Insert(deposit.Key(), &deposit)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
