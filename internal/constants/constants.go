package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	SyncTimeout        = 2 * time.Minute
	ShutdownTimeout    = 5 * time.Second
)

// SQLite serializes writers, so the pool stays small.
const (
	DBMaxOpenConns    = 8
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 30 * time.Minute
	DBMaxIdleTime     = 5 * time.Minute
	DBBatchSize       = 50
)

const (
	GarminFetchConcurrency = 4
	GarminRateBurst        = 1
)
