package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	NotifyTimeout      = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBusyTimeoutMs   = 5000
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	ConflictRetryAttempts = 3
	ConflictRetryBackoff  = 20 * time.Millisecond
)

const (
	MaxTeamNameLength = 100
)

const (
	DefaultCurrency       = "cad"
	DefaultMinAmountCents = 50
	DefaultMaxAmountCents = 99999999
)
