package roulette

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roulette_casino/internal/model"

	"github.com/shopspring/decimal"
)

const maxNameLength = 64

// BeginSession загружает игрока по имени или создаёт нового со стартовым балансом
func (s *serv) BeginSession(ctx context.Context, name string) (*model.PlayerAccount, error) {
	return s.BeginSessionWithBalance(ctx, name, s.cfg.StartingBalance())
}

// BeginSessionWithBalance как BeginSession, но новый игрок получает указанный баланс.
// У существующего игрока остаётся сохранённый баланс; обанкротившийся начинает заново.
func (s *serv) BeginSessionWithBalance(ctx context.Context, name string, balance decimal.Decimal) (*model.PlayerAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidName, name)
	}
	if !balance.IsPositive() {
		return nil, fmt.Errorf("%w: starting balance must be positive", model.ErrInvalidBet)
	}

	var player *model.PlayerAccount
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := s.playerRepo.LoadPlayer(txCtx, name)
		switch {
		case errors.Is(err, model.ErrPlayerNotFound):
			id, err := s.playerRepo.CreatePlayer(txCtx, name, balance)
			if err != nil {
				return fmt.Errorf("create player: %w", err)
			}
			player = &model.PlayerAccount{ID: id, Name: name, Balance: balance}
			s.log.Info().Int64("player", id).Str("name", name).Msg("player registered")
			return nil
		case err != nil:
			return fmt.Errorf("load player: %w", err)
		}

		if !p.Balance.IsPositive() {
			if err := s.playerRepo.UpdateBalance(txCtx, p.ID, balance); err != nil {
				return fmt.Errorf("refill bankrupt player: %w", err)
			}
			p.Balance = balance
			s.log.Info().Int64("player", p.ID).Msg("bankrupt player starts over")
		}
		player = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	s.activate(*player)
	return player, nil
}

// ResumeSession восстанавливает сессию по id из токена
func (s *serv) ResumeSession(ctx context.Context, playerID int64) (*model.PlayerAccount, error) {
	s.mtx.RLock()
	acc := s.account
	s.mtx.RUnlock()
	if acc != nil && acc.ID() == playerID {
		snap := acc.Snapshot()
		return &snap, nil
	}

	p, err := s.playerRepo.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	s.activate(*p)
	return p, nil
}

func (s *serv) activate(p model.PlayerAccount) {
	s.mtx.Lock()
	s.account = NewAccount(p)
	s.mtx.Unlock()
	s.statsRepo.Reset()
}

func (s *serv) Current() (*model.PlayerAccount, error) {
	acc, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	snap := acc.Snapshot()
	return &snap, nil
}

func (s *serv) EndSession() {
	s.mtx.Lock()
	s.account = nil
	s.mtx.Unlock()
	s.statsRepo.Reset()
}

func (s *serv) Stats() (*model.SessionStats, error) {
	if _, err := s.currentAccount(); err != nil {
		return nil, err
	}
	stats := s.statsRepo.Stats()
	return &stats, nil
}

func (s *serv) currentAccount() (*Account, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.account == nil {
		return nil, model.ErrNoSession
	}
	return s.account, nil
}
