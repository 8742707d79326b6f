package dbbadger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type accountRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAccountRepositoryImpl initialize a badger implementation of the
// domain.AccountRepository
func NewAccountRepositoryImpl(store *badgerhold.Store) domain.AccountRepository {
	return accountRepositoryImpl{store}
}

func (r accountRepositoryImpl) GetAccount(
	ctx context.Context, addr solana.PublicKey,
) (*domain.Account, error) {
	var account Account
	var err error
	key := addr.String()

	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, key, &account)
	} else {
		err = r.store.Get(key, &account)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr)
		}
		return nil, err
	}

	return account.toDomain()
}

func (r accountRepositoryImpl) UpsertAccounts(
	ctx context.Context, accounts ...*domain.Account,
) error {
	tx := txFromContext(ctx)
	for _, a := range accounts {
		account := newAccountCopy(a)
		var err error
		if tx != nil {
			err = r.store.TxUpsert(tx, account.Address, &account)
		} else {
			err = r.store.Upsert(account.Address, &account)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
