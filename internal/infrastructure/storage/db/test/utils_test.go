package db_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	dbbadger "github.com/tdex-network/vault-program/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/vault-program/internal/infrastructure/storage/db/inmemory"
)

type repoManager struct {
	Name    string
	Manager ports.RepoManager
}

func createRepoManagers(t *testing.T) []repoManager {
	badgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	datadir := t.TempDir()
	badgerOnDiskRepoManager, err := dbbadger.NewRepoManager(datadir, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerRepoManager.Close()
		badgerOnDiskRepoManager.Close()
	})

	return []repoManager{
		{
			Name:    "badger",
			Manager: badgerRepoManager,
		},
		{
			Name:    "badger_on_disk",
			Manager: badgerOnDiskRepoManager,
		},
		{
			Name:    "inmemory",
			Manager: inmemory.NewRepoManager(),
		},
	}
}

func makeRandomDeposits(num int) []domain.Deposit {
	deposits := make([]domain.Deposit, 0, num)
	for i := 0; i < num; i++ {
		deposits = append(deposits, domain.Deposit{
			TxID:      randomId(),
			Owner:     randomPublicKey().String(),
			Vault:     randomPublicKey().String(),
			Amount:    uint64(randomIntInRange(1, 1000000000)),
			Timestamp: randomTimestamp(),
		})
	}
	return deposits
}

func makeRandomWithdrawals(num int) []domain.Withdrawal {
	withdrawals := make([]domain.Withdrawal, 0, num)
	for i := 0; i < num; i++ {
		withdrawals = append(withdrawals, domain.Withdrawal{
			TxID:      randomId(),
			Owner:     randomPublicKey().String(),
			Vault:     randomPublicKey().String(),
			Amount:    uint64(randomIntInRange(1, 1000000000)),
			Timestamp: randomTimestamp(),
		})
	}
	return withdrawals
}

func randomTimestamp() int64 {
	return int64(randomIntInRange(1000000000, 1662688000))
}

func randomPublicKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(randomBytes(32))
}

func randomId() string {
	return uuid.New().String()
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}

func randomIntInRange(min, max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	return int(n.Int64()) + min
}

type page struct {
	number int64
	size   int64
}

func (p page) GetSize() int64 {
	return p.size
}

func (p page) GetNumber() int64 {
	return p.number
}
