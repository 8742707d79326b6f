package application

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/vault-program/internal/core/domain"
	"github.com/tdex-network/vault-program/internal/core/ports"
	dbbadger "github.com/tdex-network/vault-program/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/vault-program/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/vault-program/pkg/stats"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

type Config struct {
	DBType string
	// DBConfig is the data directory for badger, ignored otherwise.
	DBConfig interface{}

	ProgramID       solana.PublicKey
	SystemProgramID solana.PublicKey
	Rent            domain.Rent
	// StatsRegisterer, if defined, is where instruction metrics are
	// registered.
	StatsRegisterer prometheus.Registerer

	repo   ports.RepoManager
	stats  *stats.Collector
	ledger LedgerService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
	}
	if c.ProgramID.IsZero() {
		return ErrMissingProgramID
	}
	if c.Rent.LamportsPerByteYear == 0 || c.Rent.ExemptionThreshold <= 0 {
		return ErrInvalidRent
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.statsCollector(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	repo, _ := c.repoManager()
	return repo
}

func (c *Config) StatsCollector() *stats.Collector {
	collector, _ := c.statsCollector()
	return collector
}

func (c *Config) LedgerService() LedgerService {
	svc, _ := c.ledgerService()
	return svc
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, badgerLogger())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) statsCollector() (*stats.Collector, error) {
	if c.stats == nil {
		collector, err := stats.NewCollector(c.StatsRegisterer)
		if err != nil {
			return nil, err
		}
		c.stats = collector
	}
	return c.stats, nil
}

func (c *Config) ledgerService() (LedgerService, error) {
	if c.ledger == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		collector, err := c.statsCollector()
		if err != nil {
			return nil, err
		}
		systemProgramID := c.SystemProgramID
		if systemProgramID.IsZero() {
			systemProgramID = solana.SystemProgramID
		}
		program := NewVaultProgram(c.ProgramID, systemProgramID)
		c.ledger = NewLedgerService(repo, program, c.Rent, collector)
	}
	return c.ledger, nil
}

// badgerLogger returns the logger for the badger store, which is silenced
// unless debug logs are enabled.
func badgerLogger() badger.Logger {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return nil
	}
	return log.StandardLogger()
}
