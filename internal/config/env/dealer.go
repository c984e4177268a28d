package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"roulette_casino/internal/config"
)

const (
	dealerEnabledEnvName = "DEALER_ENABLED"
	dealerURLEnvName     = "DEALER_URL"
	dealerModelEnvName   = "DEALER_MODEL"
	dealerTimeoutEnvName = "DEALER_TIMEOUT"

	defaultDealerURL     = "http://localhost:11434"
	defaultDealerModel   = "llama3"
	defaultDealerTimeout = 5 * time.Second
)

type dealerConfig struct {
	enabled bool
	baseURL string
	model   string
	timeout time.Duration
}

func NewDealerConfig() (config.DealerConfig, error) {
	cfg := &dealerConfig{
		enabled: true,
		baseURL: defaultDealerURL,
		model:   defaultDealerModel,
		timeout: defaultDealerTimeout,
	}

	if v := os.Getenv(dealerEnabledEnvName); len(v) != 0 {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid dealer enabled flag: %w", err)
		}
		cfg.enabled = enabled
	}

	if v := os.Getenv(dealerURLEnvName); len(v) != 0 {
		cfg.baseURL = v
	}

	if v := os.Getenv(dealerModelEnvName); len(v) != 0 {
		cfg.model = v
	}

	if v := os.Getenv(dealerTimeoutEnvName); len(v) != 0 {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid dealer timeout: %w", err)
		}
		cfg.timeout = timeout
	}

	return cfg, nil
}

func (cfg *dealerConfig) Enabled() bool {
	return cfg.enabled
}

func (cfg *dealerConfig) BaseURL() string {
	return cfg.baseURL
}

func (cfg *dealerConfig) Model() string {
	return cfg.model
}

func (cfg *dealerConfig) Timeout() time.Duration {
	return cfg.timeout
}
