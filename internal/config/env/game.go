package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"roulette_casino/internal/config"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	defaultStartingBalance = "5000"
	defaultHistoryLimit    = 20
	defaultRecentWindow    = 10
	defaultRevealDuration  = 3 * time.Second
	defaultRevealTick      = 16 * time.Millisecond
	defaultMinRotations    = 5
	defaultMaxRotations    = 10
)

type gameFile struct {
	Game struct {
		StartingBalance string `yaml:"starting_balance"`
		HistoryLimit    int    `yaml:"history_limit"`
		RecentWindow    int    `yaml:"recent_window"`
	} `yaml:"game"`
	Reveal struct {
		Duration     time.Duration `yaml:"duration"`
		Tick         time.Duration `yaml:"tick"`
		MinRotations int           `yaml:"min_rotations"`
		MaxRotations int           `yaml:"max_rotations"`
	} `yaml:"reveal"`
}

type gameConfig struct {
	startingBalance decimal.Decimal
	historyLimit    int
	recentWindow    int
	revealDuration  time.Duration
	revealTick      time.Duration
	minRotations    int
	maxRotations    int
}

// NewGameConfigFromYAML читает настройки игры. Если файла нет, берутся значения по умолчанию.
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	var f gameFile

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read game config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse game config: %w", err)
		}
	}

	return newGameConfig(f)
}

func newGameConfig(f gameFile) (config.GameConfig, error) {
	raw := f.Game.StartingBalance
	if len(raw) == 0 {
		raw = defaultStartingBalance
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid starting balance %q: %w", raw, err)
	}
	if !balance.IsPositive() {
		return nil, fmt.Errorf("starting balance must be positive, got %s", balance)
	}

	cfg := &gameConfig{
		startingBalance: balance,
		historyLimit:    orDefault(f.Game.HistoryLimit, defaultHistoryLimit),
		recentWindow:    orDefault(f.Game.RecentWindow, defaultRecentWindow),
		revealDuration:  f.Reveal.Duration,
		revealTick:      f.Reveal.Tick,
		minRotations:    orDefault(f.Reveal.MinRotations, defaultMinRotations),
		maxRotations:    orDefault(f.Reveal.MaxRotations, defaultMaxRotations),
	}
	if cfg.revealDuration <= 0 {
		cfg.revealDuration = defaultRevealDuration
	}
	if cfg.revealTick <= 0 {
		cfg.revealTick = defaultRevealTick
	}
	if cfg.revealTick > cfg.revealDuration {
		return nil, fmt.Errorf("reveal tick %s is longer than duration %s", cfg.revealTick, cfg.revealDuration)
	}
	if cfg.maxRotations < cfg.minRotations {
		return nil, fmt.Errorf("max rotations %d less than min rotations %d", cfg.maxRotations, cfg.minRotations)
	}

	return cfg, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (cfg *gameConfig) StartingBalance() decimal.Decimal { return cfg.startingBalance }
func (cfg *gameConfig) HistoryLimit() int                { return cfg.historyLimit }
func (cfg *gameConfig) RecentWindow() int                { return cfg.recentWindow }
func (cfg *gameConfig) RevealDuration() time.Duration    { return cfg.revealDuration }
func (cfg *gameConfig) RevealTick() time.Duration        { return cfg.revealTick }
func (cfg *gameConfig) MinRotations() int                { return cfg.minRotations }
func (cfg *gameConfig) MaxRotations() int                { return cfg.maxRotations }
