package uow

import (
	"context"
	"fmt"
)

// Transactional begins a transaction
type Transactional interface {
	Begin() (Tx, error)
}

// Tx represents an all-or-nothing transaction, by committing or rolling back
// a set of read/write operations
type Tx interface {
	Commit() error
	Rollback() error
}

// ContextProvider returns the key under which the transaction of a
// Transactional is made available in the context passed to Run.
type ContextProvider interface {
	ContextKey() interface{}
}

// TxFromContext returns the transaction stored under key, if any.
func TxFromContext(ctx context.Context, key interface{}) (Tx, bool) {
	tx, ok := ctx.Value(key).(Tx)
	return tx, ok
}

// UnitOfWork allows to run the transactions of multiple stores as one.
type UnitOfWork struct {
	stores []Transactional
}

// NewUnitOfWork returns a new UnitOfWork over the given stores.
func NewUnitOfWork(stores ...Transactional) *UnitOfWork {
	return &UnitOfWork{stores}
}

// Run begins a transaction for every store and executes fn with a context
// carrying all of them. Transactions are committed if fn succeeds. If fn
// fails or panics, or a commit fails, all of them are rolled back in reverse
// order.
func (u *UnitOfWork) Run(
	ctx context.Context, fn func(ctx context.Context) error,
) (err error) {
	txs := make([]Tx, 0, len(u.stores))

	defer func() {
		if err == nil {
			return
		}
		for i := len(txs) - 1; i >= 0; i-- {
			if _err := txs[i].Rollback(); _err != nil {
				err = fmt.Errorf("%s, rollback failed: %w", err, _err)
				return
			}
		}
	}()

	defer func() {
		if err != nil {
			return
		}
		for _, tx := range txs {
			if _err := tx.Commit(); _err != nil {
				err = _err
				return
			}
		}
	}()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recovered: %v", rec)
		}
	}()

	seen := make(map[interface{}]bool)
	for _, s := range u.stores {
		var key interface{} = s
		if cp, ok := s.(ContextProvider); ok {
			key = cp.ContextKey()
		}
		// stores sharing the same key share the same transaction
		if seen[key] {
			continue
		}
		seen[key] = true

		tx, err := s.Begin()
		if err != nil {
			return err
		}
		txs = append(txs, tx)
		ctx = context.WithValue(ctx, key, tx)
	}

	return fn(ctx)
}
