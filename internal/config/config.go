package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tdex-network/vault-program/internal/core/application"
	"github.com/tdex-network/vault-program/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the ledger state
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// ProgramIDKey is the base58 address the vault program is deployed at
	ProgramIDKey = "PROGRAM_ID"
	// KeypairPathKey is the path of the JSON keypair file of the user
	KeypairPathKey = "KEYPAIR_PATH"
	// RentLamportsPerByteYearKey is the rent rate used to compute the minimum
	// balance of new accounts
	RentLamportsPerByteYearKey = "RENT_LAMPORTS_PER_BYTE_YEAR"
	// RentExemptionThresholdKey is the number of years of rent an account
	// must hold to be rent exempt
	RentExemptionThresholdKey = "RENT_EXEMPTION_THRESHOLD"
	// EnableStatsKey enables dumping instruction metrics to the datadir
	EnableStatsKey = "ENABLE_STATS"

	DbLocation    = "db"
	StatsLocation = "stats"

	// DefaultProgramID is the address the vault program is deployed at on
	// the reference cluster.
	DefaultProgramID = "DPFTib3APrmJaBYjYmVamEpsPiHQ4cSkYLYXiGQmYUja"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("vault-program", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("VAULT")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(ProgramIDKey, DefaultProgramID)
	vip.SetDefault(KeypairPathKey, defaultKeypairPath())
	vip.SetDefault(RentLamportsPerByteYearKey, domain.DefaultLamportsPerByteYear)
	vip.SetDefault(RentExemptionThresholdKey, domain.DefaultExemptionThreshold)
	vip.SetDefault(EnableStatsKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

// Set overrides the value of key, ie. with the one of a command line flag.
// Reload must be called once done.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// Reload validates the config again and creates the datadir, if changed.
func Reload() error {
	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}
	return initDatadir()
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func GetStatsDir() string {
	return filepath.Join(GetDatadir(), StatsLocation)
}

func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

func GetProgramID() solana.PublicKey {
	programID, _ := solana.PublicKeyFromBase58(GetString(ProgramIDKey))
	return programID
}

func GetRent() domain.Rent {
	return domain.Rent{
		LamportsPerByteYear: vip.GetUint64(RentLamportsPerByteYearKey),
		ExemptionThreshold:  GetFloat(RentExemptionThresholdKey),
	}
}

// GetApplicationConfig returns the config of the application services.
func GetApplicationConfig() *application.Config {
	return &application.Config{
		DBType:          GetString(DBTypeKey),
		DBConfig:        GetDbDir(),
		ProgramID:       GetProgramID(),
		SystemProgramID: solana.SystemProgramID,
		Rent:            GetRent(),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, ok := application.SupportedDBType[GetString(DBTypeKey)]; !ok {
		return fmt.Errorf("unsupported db type %s", GetString(DBTypeKey))
	}

	if _, err := solana.PublicKeyFromBase58(GetString(ProgramIDKey)); err != nil {
		return fmt.Errorf("invalid program id: %s", err)
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf("%s must be in range [%d, %d]",
			LogLevelKey, log.PanicLevel, log.TraceLevel)
	}

	if vip.GetUint64(RentLamportsPerByteYearKey) == 0 {
		return fmt.Errorf("%s must be greater than zero", RentLamportsPerByteYearKey)
	}
	if GetFloat(RentExemptionThresholdKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", RentExemptionThresholdKey)
	}

	return nil
}

func initDatadir() error {
	if err := makeDirectoryIfNotExists(GetDbDir()); err != nil {
		return err
	}

	if GetBool(EnableStatsKey) {
		if err := makeDirectoryIfNotExists(GetStatsDir()); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func defaultKeypairPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "solana", "id.json")
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}
