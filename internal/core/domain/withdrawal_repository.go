package domain

import "context"

// WithdrawalRepository is the abstraction for any kind of database intended
// to persist Withdrawals.
type WithdrawalRepository interface {
	// AddWithdrawals adds the provided withdrawals to the repository. Those
	// already existing won't be re-added.
	AddWithdrawals(ctx context.Context, withdrawals []Withdrawal) (int, error)
	// GetWithdrawalsForOwner returns the withdrawals made by the given user.
	GetWithdrawalsForOwner(
		ctx context.Context, owner string, page Page,
	) ([]Withdrawal, error)
	// GetAllWithdrawals returns all withdrawals.
	GetAllWithdrawals(ctx context.Context, page Page) ([]Withdrawal, error)
}
