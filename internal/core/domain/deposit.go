package domain

// Deposit holds info about lamports moved from a user to its vault.
type Deposit struct {
	TxID      string
	Owner     string
	Vault     string
	Amount    uint64
	Timestamp int64
}

// Key returns the identifier of the deposit.
func (d Deposit) Key() string {
	return d.TxID
}
