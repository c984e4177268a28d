package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"roulette_casino/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := NewGameConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.StartingBalance().Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 20, cfg.HistoryLimit())
	assert.Equal(t, 10, cfg.RecentWindow())
	assert.Equal(t, 3*time.Second, cfg.RevealDuration())
	assert.Equal(t, 16*time.Millisecond, cfg.RevealTick())
	assert.Equal(t, 5, cfg.MinRotations())
	assert.Equal(t, 10, cfg.MaxRotations())
}

func TestGameConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
game:
  starting_balance: "250.50"
  history_limit: 5
reveal:
  duration: 1500ms
  tick: 10ms
  min_rotations: 2
  max_rotations: 3
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := NewGameConfigFromYAML(path)
	require.NoError(t, err)

	assert.Equal(t, "250.5", cfg.StartingBalance().String())
	assert.Equal(t, 5, cfg.HistoryLimit())
	assert.Equal(t, 10, cfg.RecentWindow())
	assert.Equal(t, 1500*time.Millisecond, cfg.RevealDuration())
	assert.Equal(t, 10*time.Millisecond, cfg.RevealTick())
	assert.Equal(t, 2, cfg.MinRotations())
	assert.Equal(t, 3, cfg.MaxRotations())
}

func TestGameConfigRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"negative balance": "game:\n  starting_balance: \"-1\"\n",
		"not a number":     "game:\n  starting_balance: lots\n",
		"rotations":        "reveal:\n  min_rotations: 8\n  max_rotations: 3\n",
		"tick too long":    "reveal:\n  duration: 10ms\n  tick: 1s\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := NewGameConfigFromYAML(path)
			assert.Error(t, err)
		})
	}
}

func TestStorageConfig(t *testing.T) {
	t.Setenv(storageDriverEnvName, "")
	t.Setenv(sqlitePathEnvName, "")
	cfg, err := NewStorageConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverSQLite, cfg.Driver())
	assert.Equal(t, "casino.db", cfg.SQLitePath())

	t.Setenv(storageDriverEnvName, "mongo")
	_, err = NewStorageConfig()
	assert.Error(t, err)
}

func TestDealerConfig(t *testing.T) {
	t.Setenv(dealerEnabledEnvName, "false")
	t.Setenv(dealerURLEnvName, "")
	t.Setenv(dealerModelEnvName, "")
	t.Setenv(dealerTimeoutEnvName, "2s")

	cfg, err := NewDealerConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, "http://localhost:11434", cfg.BaseURL())
	assert.Equal(t, "llama3", cfg.Model())
	assert.Equal(t, 2*time.Second, cfg.Timeout())

	t.Setenv(dealerTimeoutEnvName, "soon")
	_, err = NewDealerConfig()
	assert.Error(t, err)
}

func TestHTTPConfig(t *testing.T) {
	t.Setenv(httpHostEnvName, "")
	t.Setenv(httpPortEnvName, "9090")
	cfg, err := NewHTTPConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Address())

	t.Setenv(httpPortEnvName, "99999")
	_, err = NewHTTPConfig()
	assert.Error(t, err)
}

func TestSessionTokenConfig(t *testing.T) {
	t.Setenv(sessionTokenSecretEnvName, "")
	_, err := NewSessionTokenConfig()
	assert.Error(t, err)

	t.Setenv(sessionTokenSecretEnvName, "secret")
	t.Setenv(sessionTokenTTLEnvName, "1h")
	cfg, err := NewSessionTokenConfig()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), cfg.SecretKey())
	assert.Equal(t, time.Hour, cfg.TTL())
}

func TestAppConfig(t *testing.T) {
	t.Setenv(appModeEnvName, "Console")
	t.Setenv(logLevelEnvName, "")
	cfg, err := NewAppConfig()
	require.NoError(t, err)
	assert.Equal(t, config.AppModeConsole, cfg.Mode())
	assert.Equal(t, "info", cfg.LogLevel())
}
