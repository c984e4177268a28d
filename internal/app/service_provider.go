package app

import (
	"context"

	"roulette_casino/internal/api"
	"roulette_casino/internal/config"
	"roulette_casino/internal/config/env"
	"roulette_casino/internal/repository"
	"roulette_casino/internal/repository/history_repo"
	"roulette_casino/internal/repository/migration"
	"roulette_casino/internal/repository/player_repo"
	"roulette_casino/internal/repository/sqlite_repo"
	"roulette_casino/internal/repository/stats_repo"
	"roulette_casino/internal/service"
	"roulette_casino/internal/service/dealer"
	"roulette_casino/internal/service/reveal"
	"roulette_casino/internal/service/roulette"
	"roulette_casino/internal/service/wheel"
	"roulette_casino/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"
)

const gameConfigPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Configs
	appCfg     config.AppConfig
	storageCfg config.StorageConfig
	dealerCfg  config.DealerConfig
	tokenCfg   config.SessionTokenConfig
	gameCfg    config.GameConfig

	// Database
	pgConfig    config.PGConfig
	dbClient    *pgxpool.Pool
	sqliteStore *sqlite_repo.Store

	// Repositories
	playerRepo  repository.PlayerRepository
	historyRepo repository.HistoryRepository
	statsRepo   repository.StatsRepository

	// Roulette bits
	wheel        wheel.Wheel
	engine       *roulette.Engine
	sequencer    *reveal.Sequencer
	dealerServ   service.DealerService
	rouletteServ service.RouletteService

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) AppCfg() config.AppConfig {
	if sp.appCfg == nil {
		cfg, err := env.NewAppConfig()
		if err != nil {
			panic("failed to get app config: " + err.Error())
		}
		sp.appCfg = cfg
	}
	return sp.appCfg
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DealerCfg() config.DealerConfig {
	if sp.dealerCfg == nil {
		cfg, err := env.NewDealerConfig()
		if err != nil {
			panic("failed to get dealer config: " + err.Error())
		}
		sp.dealerCfg = cfg
	}
	return sp.dealerCfg
}

func (sp *ServiceProvider) SessionTokenCfg() config.SessionTokenConfig {
	if sp.tokenCfg == nil {
		cfg, err := env.NewSessionTokenConfig()
		if err != nil {
			panic("failed to get session token config: " + err.Error())
		}
		sp.tokenCfg = cfg
	}
	return sp.tokenCfg
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) usePostgres() bool {
	return sp.StorageCfg().Driver() == config.StorageDriverPostgres
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		err = migration.Postgres(ctx, dbc)
		if err != nil {
			panic("failed to migrate db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) SQLiteStore() *sqlite_repo.Store {
	if sp.sqliteStore == nil {
		store, err := sqlite_repo.New(sp.StorageCfg().SQLitePath())
		if err != nil {
			panic("failed to open sqlite store: " + err.Error())
		}
		sp.sqliteStore = store
	}
	return sp.sqliteStore
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		var factory trm.TrFactory
		if sp.usePostgres() {
			factory = trmpgx.NewDefaultFactory(sp.DBClient(ctx))
		} else {
			factory = trmsql.NewDefaultFactory(sp.SQLiteStore().DB())
		}

		m, err := manager.New(factory)
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) PlayerRepository(ctx context.Context) repository.PlayerRepository {
	if sp.playerRepo == nil {
		if sp.usePostgres() {
			sp.playerRepo = player_repo.NewPlayerRepository(sp.DBClient(ctx))
		} else {
			sp.playerRepo = sp.SQLiteStore()
		}
	}
	return sp.playerRepo
}

func (sp *ServiceProvider) HistoryRepository(ctx context.Context) repository.HistoryRepository {
	if sp.historyRepo == nil {
		if sp.usePostgres() {
			sp.historyRepo = history_repo.NewHistoryRepository(sp.DBClient(ctx))
		} else {
			sp.historyRepo = sp.SQLiteStore()
		}
	}
	return sp.historyRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.GameCfg().RecentWindow())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) Wheel() wheel.Wheel {
	if sp.wheel == nil {
		sp.wheel = wheel.NewRandom()
	}
	return sp.wheel
}

func (sp *ServiceProvider) Engine() *roulette.Engine {
	if sp.engine == nil {
		sp.engine = roulette.NewEngine(sp.Wheel())
	}
	return sp.engine
}

func (sp *ServiceProvider) Sequencer() *reveal.Sequencer {
	if sp.sequencer == nil {
		cfg := sp.GameCfg()
		sp.sequencer = reveal.New(reveal.Config{
			Duration:     cfg.RevealDuration(),
			Tick:         cfg.RevealTick(),
			MinRotations: cfg.MinRotations(),
			MaxRotations: cfg.MaxRotations(),
		})
	}
	return sp.sequencer
}

func (sp *ServiceProvider) DealerService() service.DealerService {
	if sp.dealerServ == nil {
		cfg := sp.DealerCfg()
		if cfg.Enabled() {
			sp.dealerServ = dealer.NewClient(dealer.Config{
				BaseURL: cfg.BaseURL(),
				Model:   cfg.Model(),
				Timeout: cfg.Timeout(),
			})
		} else {
			logger.Info("dealer model disabled, using canned lines")
			sp.dealerServ = dealer.NewCanned()
		}
	}
	return sp.dealerServ
}

// RouletteService ctx должен жить столько же, сколько приложение: в нём идут показы
func (sp *ServiceProvider) RouletteService(ctx context.Context) service.RouletteService {
	if sp.rouletteServ == nil {
		sp.rouletteServ = roulette.NewRouletteService(ctx, roulette.Deps{
			PlayerRepo:  sp.PlayerRepository(ctx),
			HistoryRepo: sp.HistoryRepository(ctx),
			StatsRepo:   sp.StatsRepository(),
			TxManager:   sp.TXManager(ctx),
			Engine:      sp.Engine(),
			Sequencer:   sp.Sequencer(),
			Dealer:      sp.DealerService(),
			GameCfg:     sp.GameCfg(),
		})
	}
	return sp.rouletteServ
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = api.NewRouter(api.RouterDeps{
			Serv:      sp.RouletteService(ctx),
			SecretKey: sp.SessionTokenCfg().SecretKey(),
			TokenTTL:  sp.SessionTokenCfg().TTL(),
		})
	}

	return sp.router
}

// Close закрывает соединения с хранилищем
func (sp *ServiceProvider) Close() error {
	var err error
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.sqliteStore != nil {
		err = multierr.Append(err, sp.sqliteStore.Close())
	}
	return err
}
