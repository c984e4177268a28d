package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"

	AppModeHTTP    = "http"
	AppModeConsole = "console"
)

type AppConfig interface {
	Mode() string
	LogLevel() string
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type StorageConfig interface {
	Driver() string
	SQLitePath() string
}

type DealerConfig interface {
	Enabled() bool
	BaseURL() string
	Model() string
	Timeout() time.Duration
}

type SessionTokenConfig interface {
	SecretKey() []byte
	TTL() time.Duration
}

// GameConfig настройки игры из config.yaml. Таблица выплат не настраивается.
type GameConfig interface {
	StartingBalance() decimal.Decimal
	HistoryLimit() int
	RecentWindow() int
	RevealDuration() time.Duration
	RevealTick() time.Duration
	MinRotations() int
	MaxRotations() int
}
