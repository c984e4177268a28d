package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

// ResolutionRecord итог одного раунда. Создаётся один раз движком расчёта.
type ResolutionRecord struct {
	RoundID          uuid.UUID
	PlayerID         int64
	Slot             Slot
	Bet              Bet
	Outcome          Outcome
	Payout           decimal.Decimal // общий возврат: ставка * множитель или 0
	Delta            decimal.Decimal // изменение баланса: payout - wager или -wager
	ResultingBalance decimal.Decimal
	ResolvedAt       time.Time
}

func (r ResolutionRecord) Won() bool {
	return r.Outcome == OutcomeWin
}

// Bankrupt баланс после раунда не положительный, сессию надо завершать
func (r ResolutionRecord) Bankrupt() bool {
	return !r.ResultingBalance.IsPositive()
}
