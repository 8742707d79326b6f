// Package pda derives program addresses: addresses that are computed from a
// list of seeds and a program identity and that, by construction, have no
// corresponding private key. Only the program owning the seeds can authorize
// operations on them.
package pda

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

const (
	// MaxSeeds is the maximum number of seeds, bump included, accepted when
	// creating a program address.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length in bytes of a single seed.
	MaxSeedLength = 32
)

var (
	// ErrMaxSeedsExceeded is returned if more than MaxSeeds seeds are given.
	ErrMaxSeedsExceeded = errors.New("max number of seeds exceeded")
	// ErrMaxSeedLengthExceeded is returned if any seed is longer than
	// MaxSeedLength bytes.
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	// ErrInvalidSeeds is returned when the seeds hash to a point on the
	// ed25519 curve, ie. an address somebody could hold the private key for.
	ErrInvalidSeeds = errors.New("provided seeds do not result in a valid address")
	// ErrNoViableBump is returned when no bump in [0, 255] moves the address
	// off the curve.
	ErrNoViableBump = errors.New("unable to find a viable program address bump seed")
)

var addressMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress combines the given seeds, the last of which is usually
// the bump, with the program identity. The result is rejected with
// ErrInvalidSeeds if it lies on the ed25519 curve.
func CreateProgramAddress(
	seeds [][]byte, program solana.PublicKey,
) (solana.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return solana.PublicKey{}, ErrMaxSeedsExceeded
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return solana.PublicKey{}, ErrMaxSeedLengthExceeded
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write(addressMarker)
	hash := h.Sum(nil)

	if IsOnCurve(hash) {
		return solana.PublicKey{}, ErrInvalidSeeds
	}

	return solana.PublicKeyFromBytes(hash), nil
}

// FindProgramAddress searches the bump, starting from 255 and going down to
// 0, for which the seeds plus the bump produce a valid program address.
// It returns the address along with the bump found.
func FindProgramAddress(
	seeds [][]byte, program solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	seedsWithBump := make([][]byte, len(seeds), len(seeds)+1)
	copy(seedsWithBump, seeds)
	seedsWithBump = append(seedsWithBump, nil)

	for bump := 255; bump >= 0; bump-- {
		seedsWithBump[len(seeds)] = []byte{byte(bump)}

		addr, err := CreateProgramAddress(seedsWithBump, program)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return solana.PublicKey{}, 0, err
		}
	}

	return solana.PublicKey{}, 0, ErrNoViableBump
}

// Verify recomputes the address for the given seeds and bump and reports
// whether it matches the claimed one. It never searches for another bump:
// a bump different from the stored one must not validate a different address.
func Verify(
	seeds [][]byte, bump uint8, program, claimed solana.PublicKey,
) bool {
	addr, err := CreateProgramAddress(WithBump(seeds, bump), program)
	if err != nil {
		return false
	}
	return bytes.Equal(addr[:], claimed[:])
}

// WithBump returns a copy of seeds with the bump appended as last seed.
func WithBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	for _, s := range seeds {
		out = append(out, append([]byte{}, s...))
	}
	return append(out, []byte{bump})
}

// IsOnCurve returns whether the given 32 bytes decode to a valid ed25519
// point.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// MustFindProgramAddress is like FindProgramAddress but panics on error.
// Intended for package level variables and tests.
func MustFindProgramAddress(
	seeds [][]byte, program solana.PublicKey,
) (solana.PublicKey, uint8) {
	addr, bump, err := FindProgramAddress(seeds, program)
	if err != nil {
		panic(fmt.Sprintf("pda: %s", err))
	}
	return addr, bump
}
