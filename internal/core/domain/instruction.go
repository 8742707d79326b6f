package domain

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// InstructionSize is the size of an encoded instruction: one byte tag
// followed by the little endian amount.
const InstructionSize = 1 + 8

// InstructionTag identifies the operation carried by an instruction.
type InstructionTag uint8

const (
	InstructionDeposit InstructionTag = iota
	InstructionWithdraw
)

func (t InstructionTag) String() string {
	switch t {
	case InstructionDeposit:
		return "deposit"
	case InstructionWithdraw:
		return "withdraw"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Instruction is an operation of the vault program, either a
// DepositInstruction or a WithdrawInstruction.
type Instruction interface {
	Tag() InstructionTag
	Lamports() uint64
}

// DepositInstruction moves Amount lamports from the user to its vault.
type DepositInstruction struct {
	Amount uint64
}

// WithdrawInstruction moves Amount lamports from the vault back to its user.
type WithdrawInstruction struct {
	Amount uint64
}

func (DepositInstruction) Tag() InstructionTag  { return InstructionDeposit }
func (i DepositInstruction) Lamports() uint64   { return i.Amount }
func (WithdrawInstruction) Tag() InstructionTag { return InstructionWithdraw }
func (i WithdrawInstruction) Lamports() uint64  { return i.Amount }

// EncodeInstruction serializes the instruction into its wire format.
func EncodeInstruction(ix Instruction) ([]byte, error) {
	switch ix.(type) {
	case DepositInstruction, WithdrawInstruction:
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidInstruction, ix)
	}

	buf := bytes.NewBuffer(make([]byte, 0, InstructionSize))
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteUint8(uint8(ix.Tag())); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(ix.Lamports(), binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeInstruction parses the wire format. Payloads of the wrong size or
// with an unknown tag are rejected with ErrInvalidInstruction.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) != InstructionSize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidInstruction, InstructionSize, len(data),
		)
	}

	dec := bin.NewBorshDecoder(data)
	tag, err := dec.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInstruction, err)
	}
	amount, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInstruction, err)
	}

	switch InstructionTag(tag) {
	case InstructionDeposit:
		return DepositInstruction{amount}, nil
	case InstructionWithdraw:
		return WithdrawInstruction{amount}, nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %d", ErrInvalidInstruction, tag)
	}
}
