package domain

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/vault-program/pkg/pda"
)

// UserAccountSeeds returns the seeds of the user account of the given owner.
func UserAccountSeeds(owner solana.PublicKey) [][]byte {
	return [][]byte{owner.Bytes()}
}

// VaultSeeds returns the seeds of the custody account of the given owner.
func VaultSeeds(owner solana.PublicKey) [][]byte {
	return [][]byte{[]byte(VaultSeedLabel), owner.Bytes()}
}

// FindUserAccountAddress derives the address of the user account for owner.
func FindUserAccountAddress(
	owner, program solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return pda.FindProgramAddress(UserAccountSeeds(owner), program)
}

// FindVaultAddress derives the address of the custody account for owner.
func FindVaultAddress(
	owner, program solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return pda.FindProgramAddress(VaultSeeds(owner), program)
}
