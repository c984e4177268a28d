package roulette

import (
	"context"
	"fmt"

	"roulette_casino/internal/model"
)

// PlaceBet рассчитывает ставку, фиксирует результат в хранилище и запускает показ.
// Ошибка хранилища возвращается вместе с записью: баланс в памяти уже изменён и не откатывается.
func (s *serv) PlaceBet(ctx context.Context, bet model.Bet) (*model.ResolutionRecord, error) {
	acc, err := s.currentAccount()
	if err != nil {
		return nil, err
	}

	if bet.IsZero() {
		return nil, fmt.Errorf("%w: empty bet", model.ErrInvalidBet)
	}

	// Быстрый отказ до блокировки ставок; окончательная проверка внутри Resolve
	if !acc.CanAfford(bet.Wager()) {
		return nil, fmt.Errorf("%w: wager %s, balance %s",
			model.ErrInsufficientFunds, bet.Wager().String(), acc.Balance().String())
	}

	// Пока идёт показ, новые ставки не принимаются
	if err := s.sequencer.Begin(); err != nil {
		return nil, err
	}

	rec, err := s.engine.Resolve(acc, bet)
	if err != nil {
		s.sequencer.Abort()
		return nil, err
	}

	s.statsRepo.Record(rec)

	// Бухгалтерия фиксируется до начала анимации
	persistErr := s.persist(ctx, rec)
	if persistErr != nil {
		s.log.Error().Err(persistErr).Str("round", rec.RoundID.String()).Msg("failed to persist round")
	}

	if _, err := s.sequencer.Start(s.ctx, rec); err != nil {
		s.sequencer.Abort()
		s.log.Error().Err(err).Str("round", rec.RoundID.String()).Msg("failed to start reveal")
	}

	s.log.Info().
		Str("round", rec.RoundID.String()).
		Int64("player", rec.PlayerID).
		Str("bet", bet.Description()).
		Int("slot", int(rec.Slot)).
		Str("outcome", string(rec.Outcome)).
		Str("balance", rec.ResultingBalance.String()).
		Msg("bet resolved")

	if persistErr != nil {
		return &rec, fmt.Errorf("%w: %v", model.ErrPersistence, persistErr)
	}
	return &rec, nil
}

func (s *serv) persist(ctx context.Context, rec model.ResolutionRecord) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.playerRepo.UpdateBalance(txCtx, rec.PlayerID, rec.ResultingBalance); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		_, err := s.historyRepo.RecordHistory(txCtx, model.HistoryRecord{
			PlayerID:    rec.PlayerID,
			BetDesc:     rec.Bet.Description(),
			Amount:      rec.Bet.Wager(),
			Status:      rec.Outcome,
			OutcomeSlot: rec.Slot,
			Payout:      rec.Payout,
			CreatedAt:   rec.ResolvedAt,
		})
		if err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		return nil
	})
}
