package service

import (
	"context"

	"roulette_casino/internal/model"

	"github.com/shopspring/decimal"
)

type RouletteService interface {
	BeginSession(ctx context.Context, name string) (*model.PlayerAccount, error)
	BeginSessionWithBalance(ctx context.Context, name string, balance decimal.Decimal) (*model.PlayerAccount, error)
	// ResumeSession делает игрока с этим id текущим, если сессия была открыта раньше
	ResumeSession(ctx context.Context, playerID int64) (*model.PlayerAccount, error)
	Current() (*model.PlayerAccount, error)
	EndSession()

	PlaceBet(ctx context.Context, bet model.Bet) (*model.ResolutionRecord, error)
	WaitReveal(ctx context.Context) error
	Reveals(buffer int) (<-chan model.RevealFrame, func())
	Comments(buffer int) (<-chan model.DealerComment, func())

	History(ctx context.Context, limit int) ([]model.HistoryRecord, error)
	ClearHistory(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Stats() (*model.SessionStats, error)

	AskDealer(ctx context.Context, question string) string
}

// DealerService комментарии крупье. Никогда не возвращает ошибку, при сбое отдаёт запасную фразу.
type DealerService interface {
	Ask(ctx context.Context, question string) string
	Comment(ctx context.Context, rec model.ResolutionRecord) string
	CommentAsync(ctx context.Context, rec model.ResolutionRecord, done func(string))
}
