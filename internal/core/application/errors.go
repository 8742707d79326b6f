package application

import "errors"

var (
	// ErrUnsupportedDBType ...
	ErrUnsupportedDBType = errors.New("db type not supported")
	// ErrMissingProgramID ...
	ErrMissingProgramID = errors.New("missing program id")
	// ErrInvalidRent is returned if rent parameters would let accounts be
	// created without any balance.
	ErrInvalidRent = errors.New("rent parameters must be positive")
)
