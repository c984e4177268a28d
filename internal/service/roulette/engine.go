package roulette

import (
	"fmt"
	"time"

	"roulette_casino/internal/model"
	"roulette_casino/internal/service/wheel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine расчёт ставки: проверка баланса, спин, выплата, изменение баланса
type Engine struct {
	wheel wheel.Wheel
	now   func() time.Time
}

func NewEngine(w wheel.Wheel) *Engine {
	return &Engine{wheel: w, now: time.Now}
}

// Resolve рассчитывает одну ставку. Проверка баланса и изменение баланса выполняются
// под блокировкой аккаунта, колесо не крутится, если ставка не по карману.
func (e *Engine) Resolve(acc *Account, bet model.Bet) (model.ResolutionRecord, error) {
	if bet.IsZero() {
		return model.ResolutionRecord{}, fmt.Errorf("%w: empty bet", model.ErrInvalidBet)
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	// 1. Проверка баланса
	wager := bet.Wager()
	if wager.GreaterThan(acc.balance) {
		return model.ResolutionRecord{}, fmt.Errorf("%w: wager %s, balance %s",
			model.ErrInsufficientFunds, wager.String(), acc.balance.String())
	}

	// 2. Спин
	slot := e.wheel.Spin()

	// 3-4. Вердикт и выплата
	outcome := model.OutcomeLoss
	payout := decimal.Zero
	delta := wager.Neg()
	if bet.JudgesWin(slot) {
		outcome = model.OutcomeWin
		payout = wager.Mul(decimal.NewFromInt(bet.PayoutMultiplier()))
		delta = payout.Sub(wager)
	}

	// 5. Изменение баланса
	balance := acc.applyDelta(delta)

	return model.ResolutionRecord{
		RoundID:          uuid.New(),
		PlayerID:         acc.id,
		Slot:             slot,
		Bet:              bet,
		Outcome:          outcome,
		Payout:           payout,
		Delta:            delta,
		ResultingBalance: balance,
		ResolvedAt:       e.now(),
	}, nil
}
