package domain

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

// Account is the ledger entry stored at an address: a lamport balance, the
// program that owns it and an opaque data buffer only the owner can modify.
type Account struct {
	Address  solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// NewSystemAccount returns an empty account owned by the system program. This
// is what the ledger reports for any address never written before.
func NewSystemAccount(addr solana.PublicKey) *Account {
	return &Account{
		Address: addr,
		Owner:   solana.SystemProgramID,
	}
}

// IsOwnedBy returns whether the account is owned by the given program.
func (a *Account) IsOwnedBy(program solana.PublicKey) bool {
	return a.Owner.Equals(program)
}

// IsUnused returns whether nothing was ever stored at the account: no
// lamports, no data and still owned by the system program.
func (a *Account) IsUnused() bool {
	return a.Lamports == 0 && len(a.Data) == 0 &&
		a.Owner.Equals(solana.SystemProgramID)
}

// IsAssignable returns whether the account can still be allocated and
// assigned to a program: it holds no data and is owned by the system program.
// Unlike IsUnused, it may already hold lamports.
func (a *Account) IsAssignable() bool {
	return len(a.Data) == 0 && a.Owner.Equals(solana.SystemProgramID)
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	return &Account{
		Address:  a.Address,
		Owner:    a.Owner,
		Lamports: a.Lamports,
		Data:     bytes.Clone(a.Data),
	}
}

// AccountInfo is the view of an account referenced by an instruction, as
// supplied by the host.
type AccountInfo struct {
	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Rent defines the minimum balance an account must hold to be exempt from
// rent collection.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
}

// DefaultRent returns the ledger default rent parameters.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// MinimumBalance returns the lamports required for an account of the given
// data size to be rent exempt.
func (r Rent) MinimumBalance(dataSize uint64) uint64 {
	bytesPerYear := (AccountStorageOverhead + dataSize) * r.LamportsPerByteYear
	return uint64(float64(bytesPerYear) * r.ExemptionThreshold)
}
