package domain

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// UserAccountSize is the fixed size of an encoded UserAccount: owner key,
// user account bump, vault bump and initialization flag.
const UserAccountSize = solana.PublicKeyLength + 1 + 1 + 1

// UserAccount is the per user metadata record owned by the vault program.
// Once initialized its fields never change.
type UserAccount struct {
	Owner       solana.PublicKey
	UserBump    uint8
	VaultBump   uint8
	Initialized bool
}

// NewUserAccount returns an initialized record for owner with the given
// derivation bumps.
func NewUserAccount(owner solana.PublicKey, userBump, vaultBump uint8) UserAccount {
	return UserAccount{
		Owner:       owner,
		UserBump:    userBump,
		VaultBump:   vaultBump,
		Initialized: true,
	}
}

// Encode serializes the record with its fixed Borsh layout.
func (u UserAccount) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, UserAccountSize))
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(u.Owner[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(u.UserBump); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(u.VaultBump); err != nil {
		return nil, err
	}
	if err := enc.WriteBool(u.Initialized); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeUserAccount parses a record previously serialized with Encode.
func DecodeUserAccount(data []byte) (*UserAccount, error) {
	if len(data) != UserAccountSize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d", ErrMalformed, UserAccountSize, len(data),
		)
	}

	dec := bin.NewBorshDecoder(data)
	owner, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	userBump, err := dec.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	vaultBump, err := dec.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	flag, err := dec.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	if flag > 1 {
		return nil, fmt.Errorf("%w: invalid initialized flag %d", ErrMalformed, flag)
	}

	return &UserAccount{
		Owner:       solana.PublicKeyFromBytes(owner),
		UserBump:    userBump,
		VaultBump:   vaultBump,
		Initialized: flag == 1,
	}, nil
}

// UserAccountState is the state of the ledger account meant to hold a
// UserAccount. It is either UninitializedUserAccount or
// InitializedUserAccount.
type UserAccountState interface {
	isUserAccountState()
}

// UninitializedUserAccount means the record must still be written. Allocated
// tells whether the ledger account already exists under the program
// ownership, in which case it must not be created again.
type UninitializedUserAccount struct {
	Allocated bool
}

// InitializedUserAccount holds the decoded record.
type InitializedUserAccount struct {
	Record UserAccount
}

func (UninitializedUserAccount) isUserAccountState() {}
func (InitializedUserAccount) isUserAccountState()   {}

// UserAccountStateOf inspects the ledger account and returns its state.
// Accounts not owned by the program are uninitialized; accounts owned by it
// must decode to a valid record.
func UserAccountStateOf(
	account *Account, program solana.PublicKey,
) (UserAccountState, error) {
	if account == nil || !account.IsOwnedBy(program) {
		return UninitializedUserAccount{}, nil
	}

	record, err := DecodeUserAccount(account.Data)
	if err != nil {
		return nil, err
	}
	if !record.Initialized {
		return UninitializedUserAccount{Allocated: true}, nil
	}
	return InitializedUserAccount{*record}, nil
}
