package ports

import (
	"context"

	"github.com/tdex-network/vault-program/internal/core/domain"
)

// RepoManager interface defines the methods for accounts, deposits and
// withdrawals.
type RepoManager interface {
	AccountRepository() domain.AccountRepository
	DepositRepository() domain.DepositRepository
	WithdrawalRepository() domain.WithdrawalRepository

	// RunTransaction runs handler so that all the writes made through the
	// context it receives are either all applied or none of them is.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
