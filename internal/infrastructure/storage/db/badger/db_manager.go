package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type contextKey string

const txKey = contextKey("tx")

type repoManager struct {
	store  *badgerhold.Store
	ticker *time.Ticker

	accountRepository    domain.AccountRepository
	depositRepository    domain.DepositRepository
	withdrawalRepository domain.WithdrawalRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. If the data dir is
// empty, the store is kept in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "ledger")
	}

	store, ticker, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &repoManager{
		store:                store,
		ticker:               ticker,
		accountRepository:    NewAccountRepositoryImpl(store),
		depositRepository:    NewDepositRepositoryImpl(store),
		withdrawalRepository: NewWithdrawalRepositoryImpl(store),
	}, nil
}

func (r *repoManager) AccountRepository() domain.AccountRepository {
	return r.accountRepository
}

func (r *repoManager) DepositRepository() domain.DepositRepository {
	return r.depositRepository
}

func (r *repoManager) WithdrawalRepository() domain.WithdrawalRepository {
	return r.withdrawalRepository
}

func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if txFromContext(ctx) != nil {
		return handler(ctx)
	}

	tx := r.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, txKey, tx))
	if err != nil {
		return nil, err
	}
	if readOnly {
		return res, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *repoManager) Close() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
	r.store.Close()
}

func txFromContext(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(txKey).(*badger.Txn)
	return tx
}

func createDb(
	dbDir string, logger badger.Logger,
) (*badgerhold.Store, *time.Ticker, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, nil, err
	}

	if isInMemory {
		return db, nil, nil
	}

	ticker := time.NewTicker(30 * time.Minute)
	go func() {
		for range ticker.C {
			if err := db.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		}
	}()

	return db, ticker, nil
}
