package repository

import (
	"context"

	"roulette_casino/internal/model"

	"github.com/shopspring/decimal"
)

type PlayerRepository interface {
	// LoadPlayer возвращает model.ErrPlayerNotFound, если игрока с таким именем нет
	LoadPlayer(ctx context.Context, name string) (*model.PlayerAccount, error)
	GetPlayer(ctx context.Context, id int64) (*model.PlayerAccount, error)
	CreatePlayer(ctx context.Context, name string, balance decimal.Decimal) (id int64, err error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	DeletePlayer(ctx context.Context, id int64) error
}

type HistoryRepository interface {
	RecordHistory(ctx context.Context, rec model.HistoryRecord) (id int64, err error)
	// FetchHistory последние записи, самые свежие первыми
	FetchHistory(ctx context.Context, playerID int64, limit int) ([]model.HistoryRecord, error)
	ClearHistory(ctx context.Context, playerID int64) error
}

// StatsRepository статистика текущей сессии в памяти
type StatsRepository interface {
	Reset()
	Record(rec model.ResolutionRecord)
	Stats() model.SessionStats
}
