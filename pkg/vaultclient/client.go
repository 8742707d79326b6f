// Package vaultclient builds the instructions of the vault program, either
// as solana instructions for submission to a cluster or as signed
// transactions for the local ledger.
package vaultclient

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/internal/core/domain"
)

// Addresses are the accounts derived for an owner.
type Addresses struct {
	Owner           solana.PublicKey
	UserAccount     solana.PublicKey
	UserAccountBump uint8
	Vault           solana.PublicKey
	VaultBump       uint8
}

type Client struct {
	programID solana.PublicKey
}

func New(programID solana.PublicKey) *Client {
	return &Client{programID}
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// Derive returns the user account and vault addresses of owner.
func (c *Client) Derive(owner solana.PublicKey) (*Addresses, error) {
	userAccount, userBump, err := domain.FindUserAccountAddress(owner, c.programID)
	if err != nil {
		return nil, err
	}
	vault, vaultBump, err := domain.FindVaultAddress(owner, c.programID)
	if err != nil {
		return nil, err
	}
	return &Addresses{
		Owner:           owner,
		UserAccount:     userAccount,
		UserAccountBump: userBump,
		Vault:           vault,
		VaultBump:       vaultBump,
	}, nil
}

// NewDepositInstruction returns the instruction moving lamports from owner
// to its vault.
func (c *Client) NewDepositInstruction(
	owner solana.PublicKey, lamports uint64,
) (*solana.GenericInstruction, error) {
	return c.newInstruction(owner, domain.DepositInstruction{Amount: lamports})
}

// NewWithdrawInstruction returns the instruction moving lamports from the
// vault of owner back to owner.
func (c *Client) NewWithdrawInstruction(
	owner solana.PublicKey, lamports uint64,
) (*solana.GenericInstruction, error) {
	return c.newInstruction(owner, domain.WithdrawInstruction{Amount: lamports})
}

// NewDepositTransaction returns a deposit transaction signed by key.
func (c *Client) NewDepositTransaction(
	key solana.PrivateKey, lamports uint64,
) (*domain.Transaction, error) {
	ix, err := c.NewDepositInstruction(key.PublicKey(), lamports)
	if err != nil {
		return nil, err
	}
	return NewTransaction(ix, key)
}

// NewWithdrawTransaction returns a withdraw transaction signed by key.
func (c *Client) NewWithdrawTransaction(
	key solana.PrivateKey, lamports uint64,
) (*domain.Transaction, error) {
	ix, err := c.NewWithdrawInstruction(key.PublicKey(), lamports)
	if err != nil {
		return nil, err
	}
	return NewTransaction(ix, key)
}

func (c *Client) newInstruction(
	owner solana.PublicKey, ix domain.Instruction,
) (*solana.GenericInstruction, error) {
	addresses, err := c.Derive(owner)
	if err != nil {
		return nil, err
	}
	data, err := domain.EncodeInstruction(ix)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(owner).WRITE().SIGNER(),
		solana.Meta(addresses.UserAccount).WRITE(),
		solana.Meta(addresses.Vault).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}
	return solana.NewInstruction(c.programID, accounts, data), nil
}

// NewMessage converts a solana instruction into a message for the local
// ledger.
func NewMessage(ix solana.Instruction) (domain.Message, error) {
	data, err := ix.Data()
	if err != nil {
		return domain.Message{}, err
	}

	accounts := make([]domain.AccountMeta, 0, len(ix.Accounts()))
	for _, a := range ix.Accounts() {
		accounts = append(accounts, domain.AccountMeta{
			PublicKey:  a.PublicKey,
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return domain.NewMessage(ix.ProgramID(), accounts, data)
}

// NewTransaction converts ix into a message and signs it with keys.
func NewTransaction(
	ix solana.Instruction, keys ...solana.PrivateKey,
) (*domain.Transaction, error) {
	msg, err := NewMessage(ix)
	if err != nil {
		return nil, err
	}
	return domain.NewTransaction(msg, keys...)
}
