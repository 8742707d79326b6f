package domain

// Withdrawal holds info about lamports moved from a vault back to its user.
type Withdrawal struct {
	TxID      string
	Owner     string
	Vault     string
	Amount    uint64
	Timestamp int64
}

// Key returns the identifier of the withdrawal.
func (w Withdrawal) Key() string {
	return w.TxID
}
