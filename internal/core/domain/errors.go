package domain

import "errors"

// Errors returned by the vault program while processing an instruction.
var (
	// ErrInvalidInstruction is returned when the instruction payload cannot be
	// decoded into a known operation
	ErrInvalidInstruction = errors.New("invalid instruction data")
	// ErrNotEnoughAccountKeys is returned when less accounts than required are
	// referenced by the instruction
	ErrNotEnoughAccountKeys = errors.New("not enough account keys given to the instruction")
	// ErrMissingSignature is returned when an account that must authorize the
	// operation did not sign it
	ErrMissingSignature = errors.New("missing required signature")
	// ErrInvalidProgramReference is returned when the system program account
	// does not match the expected one
	ErrInvalidProgramReference = errors.New("invalid system program reference")
	// ErrAddressMismatch is returned when a supplied address differs from the
	// one derived for the acting user
	ErrAddressMismatch = errors.New("account address does not match derived address")
	// ErrOwnershipMismatch is returned when the user account does not belong
	// to the acting user
	ErrOwnershipMismatch = errors.New("user account does not belong to the requesting user")
	// ErrAccountNotInitialized is returned when the user account has not been
	// created yet
	ErrAccountNotInitialized = errors.New("user account is not initialized")
	// ErrMalformed is returned when account data cannot be decoded
	ErrMalformed = errors.New("malformed account data")
	// ErrInsufficientFunds is returned by the ledger when a transfer would
	// overdraw the source account
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Errors returned by the ledger host.
var (
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyInUse is returned when creating an account at an address
	// that already holds lamports or data
	ErrAccountAlreadyInUse = errors.New("account already in use")
	// ErrReadonlyAccount is returned when modifying an account not marked as
	// writable by the transaction
	ErrReadonlyAccount = errors.New("account is not writable")
	// ErrIllegalOwner is returned when a program modifies data of an account
	// it does not own, or moves lamports out of a non system account
	ErrIllegalOwner = errors.New("illegal account owner")
	// ErrInvalidAccountDataLength ...
	ErrInvalidAccountDataLength = errors.New("invalid account data length")
	// ErrArithmeticOverflow ...
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrInvalidSignature is returned when a transaction signature does not
	// verify against the message
	ErrInvalidSignature = errors.New("transaction signature verification failure")
	// ErrUnknownProgram is returned when a transaction targets a program not
	// deployed on the ledger
	ErrUnknownProgram = errors.New("unknown program")
	// ErrInvalidTransaction ...
	ErrInvalidTransaction = errors.New("invalid transaction")
)
