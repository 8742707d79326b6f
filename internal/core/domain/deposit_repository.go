package domain

import "context"

// DepositRepository is the abstraction for any kind of database intended to
// persist Deposits.
type DepositRepository interface {
	// AddDeposits adds the provided deposits to the repository. Those already
	// existing won't be re-added.
	AddDeposits(ctx context.Context, deposits []Deposit) (int, error)
	// GetDepositsForOwner returns the deposits made by the given user.
	GetDepositsForOwner(
		ctx context.Context, owner string, page Page,
	) ([]Deposit, error)
	// GetAllDeposits returns all deposits.
	GetAllDeposits(ctx context.Context, page Page) ([]Deposit, error)
}
