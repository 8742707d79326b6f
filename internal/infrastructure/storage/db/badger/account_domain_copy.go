package dbbadger

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
)

// Account is the storage copy of domain.Account.
type Account struct {
	Address  string
	Owner    string
	Lamports uint64
	Data     []byte
}

func newAccountCopy(a *domain.Account) Account {
	return Account{
		Address:  a.Address.String(),
		Owner:    a.Owner.String(),
		Lamports: a.Lamports,
		Data:     a.Data,
	}
}

func (a Account) toDomain() (*domain.Account, error) {
	address, err := solana.PublicKeyFromBase58(a.Address)
	if err != nil {
		return nil, err
	}
	owner, err := solana.PublicKeyFromBase58(a.Owner)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		Address:  address,
		Owner:    owner,
		Lamports: a.Lamports,
		Data:     a.Data,
	}, nil
}
