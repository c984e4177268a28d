package roulette

import (
	"context"
	"fmt"

	"roulette_casino/internal/model"
)

// History последние раунды игрока, свежие первыми
func (s *serv) History(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	acc, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.cfg.HistoryLimit() {
		limit = s.cfg.HistoryLimit()
	}

	records, err := s.historyRepo.FetchHistory(ctx, acc.ID(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return records, nil
}

func (s *serv) ClearHistory(ctx context.Context) error {
	acc, err := s.currentAccount()
	if err != nil {
		return err
	}
	if err := s.historyRepo.ClearHistory(ctx, acc.ID()); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return nil
}

// DeleteAccount удаляет игрока вместе с историей и закрывает сессию
func (s *serv) DeleteAccount(ctx context.Context) error {
	acc, err := s.currentAccount()
	if err != nil {
		return err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.historyRepo.ClearHistory(txCtx, acc.ID()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := s.playerRepo.DeletePlayer(txCtx, acc.ID()); err != nil {
			return fmt.Errorf("delete player: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	s.log.Info().Int64("player", acc.ID()).Msg("player deleted")
	s.EndSession()
	return nil
}
