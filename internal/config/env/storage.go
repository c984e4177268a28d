package env

import (
	"fmt"
	"os"
	"strings"

	"roulette_casino/internal/config"
)

const (
	storageDriverEnvName = "STORAGE_DRIVER"
	sqlitePathEnvName    = "SQLITE_PATH"

	defaultSQLitePath = "casino.db"
)

type storageConfig struct {
	driver     string
	sqlitePath string
}

func NewStorageConfig() (config.StorageConfig, error) {
	driver := strings.ToLower(os.Getenv(storageDriverEnvName))
	if len(driver) == 0 {
		driver = config.StorageDriverSQLite
	}
	if driver != config.StorageDriverSQLite && driver != config.StorageDriverPostgres {
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	path := os.Getenv(sqlitePathEnvName)
	if len(path) == 0 {
		path = defaultSQLitePath
	}

	return &storageConfig{
		driver:     driver,
		sqlitePath: path,
	}, nil
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}

func (cfg *storageConfig) SQLitePath() string {
	return cfg.sqlitePath
}
