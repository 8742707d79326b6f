package domain

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/pkg/pda"
)

// Signer is the capability a program hands to the ledger to act on behalf of
// one of its derived addresses. It carries the full seeds, bump included, so
// that the ledger can re-derive and check the address. A Signer is short
// lived and must never be persisted or transmitted.
type Signer struct {
	program solana.PublicKey
	seeds   [][]byte
	address solana.PublicKey
}

// NewSigner builds the capability for the address derived from seeds, which
// must already include the bump, under program.
func NewSigner(program solana.PublicKey, seeds [][]byte) (*Signer, error) {
	addr, err := pda.CreateProgramAddress(seeds, program)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAddressMismatch, err)
	}

	cp := make([][]byte, 0, len(seeds))
	for _, s := range seeds {
		cp = append(cp, bytes.Clone(s))
	}
	return &Signer{program, cp, addr}, nil
}

// NewUserAccountSigner returns the capability for the user account of owner.
func NewUserAccountSigner(program, owner solana.PublicKey, bump uint8) (*Signer, error) {
	return NewSigner(program, pda.WithBump(UserAccountSeeds(owner), bump))
}

// VaultSignerSeeds returns the seeds, stored bump included, that sign for the
// vault of owner.
func VaultSignerSeeds(owner solana.PublicKey, bump uint8) [][]byte {
	return pda.WithBump(VaultSeeds(owner), bump)
}

// Address returns the derived address the capability authorizes.
func (s *Signer) Address() solana.PublicKey {
	return s.address
}

// Program returns the program the address is derived for.
func (s *Signer) Program() solana.PublicKey {
	return s.program
}

// Seeds returns a copy of the seeds the capability was built from.
func (s *Signer) Seeds() [][]byte {
	cp := make([][]byte, 0, len(s.seeds))
	for _, seed := range s.seeds {
		cp = append(cp, bytes.Clone(seed))
	}
	return cp
}

// TransferIntent is a request to move Amount lamports between two accounts.
// When the source is a program derived address Signer authorizes it,
// otherwise the source must have signed the transaction itself.
type TransferIntent struct {
	From   solana.PublicKey
	To     solana.PublicKey
	Amount uint64
	Signer *Signer
}

// NewTransferIntent returns an intent whose source authorizes the transfer by
// signing the transaction.
func NewTransferIntent(from, to solana.PublicKey, amount uint64) *TransferIntent {
	return &TransferIntent{From: from, To: to, Amount: amount}
}

// AuthorizeTransfer builds the signing capability out of seeds and returns a
// transfer intent signed by it. This is the only way value can leave a
// program derived address. It fails if the seeds do not derive from.
func AuthorizeTransfer(
	program solana.PublicKey, seeds [][]byte,
	from, to solana.PublicKey, amount uint64,
) (*TransferIntent, error) {
	signer, err := NewSigner(program, seeds)
	if err != nil {
		return nil, err
	}
	if !signer.Address().Equals(from) {
		return nil, fmt.Errorf(
			"%w: signer seeds derive %s, not %s",
			ErrAddressMismatch, signer.Address(), from,
		)
	}

	return &TransferIntent{
		From:   from,
		To:     to,
		Amount: amount,
		Signer: signer,
	}, nil
}
