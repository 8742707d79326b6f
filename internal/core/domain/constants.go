package domain

const (
	// LamportsPerSol is the number of lamports in one SOL
	LamportsPerSol = 1_000_000_000

	// AccountStorageOverhead is the number of bytes charged by the ledger for
	// every account, on top of the data it holds
	AccountStorageOverhead = 128
	// DefaultLamportsPerByteYear ...
	DefaultLamportsPerByteYear = 3480
	// DefaultExemptionThreshold ...
	DefaultExemptionThreshold = 2.0

	// VaultSeedLabel prefixes the seeds of the custody account
	VaultSeedLabel = "vault"
)
