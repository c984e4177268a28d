package env

import (
	"fmt"
	"os"
	"strings"

	"roulette_casino/internal/config"
)

const (
	appModeEnvName  = "APP_MODE"
	logLevelEnvName = "LOG_LEVEL"
)

type appConfig struct {
	mode     string
	logLevel string
}

// NewAppConfig режим запуска: http (по умолчанию) или console
func NewAppConfig() (config.AppConfig, error) {
	mode := strings.ToLower(os.Getenv(appModeEnvName))
	if len(mode) == 0 {
		mode = config.AppModeHTTP
	}
	if mode != config.AppModeHTTP && mode != config.AppModeConsole {
		return nil, fmt.Errorf("unknown app mode %q", mode)
	}

	logLevel := os.Getenv(logLevelEnvName)
	if len(logLevel) == 0 {
		logLevel = "info"
	}

	return &appConfig{
		mode:     mode,
		logLevel: logLevel,
	}, nil
}

func (cfg *appConfig) Mode() string {
	return cfg.mode
}

func (cfg *appConfig) LogLevel() string {
	return cfg.logLevel
}
