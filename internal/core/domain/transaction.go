package domain

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// AccountMeta references an account from a message, telling whether it must
// sign the transaction and whether the program may modify it.
type AccountMeta struct {
	PublicKey  solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Message is the signed part of a transaction: the program to invoke, the
// ordered accounts it touches and the opaque instruction data. Nonce makes
// otherwise identical messages produce different signatures.
type Message struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMeta
	Data      []byte
	Nonce     [32]byte
}

// NewMessage returns a message with a random nonce.
func NewMessage(
	programID solana.PublicKey, accounts []AccountMeta, data []byte,
) (Message, error) {
	msg := Message{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
	if _, err := rand.Read(msg.Nonce[:]); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Serialize returns the bytes that are signed.
func (m Message) Serialize() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(m.ProgramID[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint32(uint32(len(m.Accounts)), binary.LittleEndian); err != nil {
		return nil, err
	}
	for _, a := range m.Accounts {
		if err := enc.WriteBytes(a.PublicKey[:], false); err != nil {
			return nil, err
		}
		if err := enc.WriteBool(a.IsSigner); err != nil {
			return nil, err
		}
		if err := enc.WriteBool(a.IsWritable); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteUint32(uint32(len(m.Data)), binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(m.Data, false); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(m.Nonce[:], false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Signers returns the distinct keys required to sign the message, in order
// of appearance.
func (m Message) Signers() []solana.PublicKey {
	signers := make([]solana.PublicKey, 0)
	seen := make(map[solana.PublicKey]bool)
	for _, a := range m.Accounts {
		if a.IsSigner && !seen[a.PublicKey] {
			seen[a.PublicKey] = true
			signers = append(signers, a.PublicKey)
		}
	}
	return signers
}

// Transaction is a message together with one signature for each of its
// signers, in the same order as Message.Signers.
type Transaction struct {
	Message    Message
	Signatures []solana.Signature
}

// NewTransaction signs the message with the given keys. A key must be
// provided for every signer of the message.
func NewTransaction(msg Message, keys ...solana.PrivateKey) (*Transaction, error) {
	payload, err := msg.Serialize()
	if err != nil {
		return nil, err
	}

	keysByPubkey := make(map[solana.PublicKey]solana.PrivateKey)
	for _, k := range keys {
		keysByPubkey[k.PublicKey()] = k
	}

	signers := msg.Signers()
	signatures := make([]solana.Signature, 0, len(signers))
	for _, signer := range signers {
		key, ok := keysByPubkey[signer]
		if !ok {
			return nil, fmt.Errorf("missing private key for signer %s", signer)
		}
		sig, err := key.Sign(payload)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, sig)
	}

	return &Transaction{msg, signatures}, nil
}

// ID returns the identifier of the transaction, its first signature.
func (t *Transaction) ID() string {
	if len(t.Signatures) <= 0 {
		return ""
	}
	return t.Signatures[0].String()
}

// Verify checks that every signer of the message produced a valid
// signature.
func (t *Transaction) Verify() error {
	signers := t.Message.Signers()
	if len(signers) <= 0 {
		return fmt.Errorf("%w: no signers", ErrInvalidTransaction)
	}
	if len(t.Signatures) != len(signers) {
		return fmt.Errorf(
			"%w: expected %d signatures, got %d",
			ErrInvalidSignature, len(signers), len(t.Signatures),
		)
	}

	payload, err := t.Message.Serialize()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	for i, signer := range signers {
		if !t.Signatures[i].Verify(signer, payload) {
			return fmt.Errorf("%w: signer %s", ErrInvalidSignature, signer)
		}
	}
	return nil
}

// AccountInfos returns the accounts of the message as seen by the program.
// Signer flags can be trusted only once Verify succeeded.
func (t *Transaction) AccountInfos() []AccountInfo {
	infos := make([]AccountInfo, 0, len(t.Message.Accounts))
	for _, a := range t.Message.Accounts {
		infos = append(infos, AccountInfo{
			Key:        a.PublicKey,
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return infos
}
