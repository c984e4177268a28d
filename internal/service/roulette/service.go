package roulette

import (
	"context"
	"sync"

	"roulette_casino/internal/config"
	"roulette_casino/internal/model"
	"roulette_casino/internal/repository"
	"roulette_casino/internal/service"
	"roulette_casino/internal/service/reveal"
	"roulette_casino/pkg/hub"
	"roulette_casino/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/rs/zerolog"
)

type Deps struct {
	PlayerRepo  repository.PlayerRepository
	HistoryRepo repository.HistoryRepository
	StatsRepo   repository.StatsRepository
	TxManager   trm.Manager
	Engine      *Engine
	Sequencer   *reveal.Sequencer
	Dealer      service.DealerService
	GameCfg     config.GameConfig
}

type serv struct {
	// ctx живёт вместе с приложением, в нём идут показы и запросы к крупье
	ctx context.Context

	playerRepo  repository.PlayerRepository
	historyRepo repository.HistoryRepository
	statsRepo   repository.StatsRepository
	txManager   trm.Manager
	engine      *Engine
	sequencer   *reveal.Sequencer
	dealer      service.DealerService
	cfg         config.GameConfig

	mtx     sync.RWMutex
	account *Account

	comments *hub.Hub[model.DealerComment]
	log      zerolog.Logger
}

// NewRouletteService Рулетка для одного игрока
func NewRouletteService(ctx context.Context, deps Deps) service.RouletteService {
	s := &serv{
		ctx:         ctx,
		playerRepo:  deps.PlayerRepo,
		historyRepo: deps.HistoryRepo,
		statsRepo:   deps.StatsRepo,
		txManager:   deps.TxManager,
		engine:      deps.Engine,
		sequencer:   deps.Sequencer,
		dealer:      deps.Dealer,
		cfg:         deps.GameCfg,
		comments:    hub.New[model.DealerComment](),
		log:         logger.With("roulette"),
	}

	s.sequencer.OnRevealed(s.onRevealed)

	return s
}

// onRevealed после показа просим крупье прокомментировать раунд.
// Банкроту комментарий не нужен, его сессия закончена.
func (s *serv) onRevealed(rec model.ResolutionRecord) {
	if rec.Bankrupt() {
		return
	}
	s.dealer.CommentAsync(s.ctx, rec, func(text string) {
		s.comments.PublishLast(model.DealerComment{RoundID: rec.RoundID, Text: text})
	})
}

func (s *serv) Reveals(buffer int) (<-chan model.RevealFrame, func()) {
	return s.sequencer.Subscribe(buffer)
}

func (s *serv) Comments(buffer int) (<-chan model.DealerComment, func()) {
	return s.comments.Subscribe(buffer)
}

func (s *serv) WaitReveal(ctx context.Context) error {
	return s.sequencer.Wait(ctx)
}

func (s *serv) AskDealer(ctx context.Context, question string) string {
	return s.dealer.Ask(ctx, question)
}
