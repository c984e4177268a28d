package env

import (
	"fmt"
	"os"
	"time"

	"roulette_casino/internal/config"
)

const (
	sessionTokenSecretEnvName = "SESSION_TOKEN_SECRET"
	sessionTokenTTLEnvName    = "SESSION_TOKEN_TTL"
)

type sessionTokenConfig struct {
	secretKey string
	ttl       time.Duration
}

func NewSessionTokenConfig() (config.SessionTokenConfig, error) {
	secret := os.Getenv(sessionTokenSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("session token secret key not found")
	}

	ttl := os.Getenv(sessionTokenTTLEnvName)
	if len(ttl) == 0 {
		return nil, fmt.Errorf("session token ttl not found")
	}

	ttlParsed, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid session token ttl: %w", err)
	}

	return &sessionTokenConfig{
		secretKey: secret,
		ttl:       ttlParsed,
	}, nil
}

func (cfg *sessionTokenConfig) SecretKey() []byte {
	return []byte(cfg.secretKey)
}

func (cfg *sessionTokenConfig) TTL() time.Duration {
	return cfg.ttl
}
