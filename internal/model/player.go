package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// PlayerAccount снимок игрока: идентификатор и баланс
type PlayerAccount struct {
	ID      int64
	Name    string
	Balance decimal.Decimal
}

// HistoryRecord сыгранный раунд в хранилище
type HistoryRecord struct {
	ID          int64
	PlayerID    int64
	BetDesc     string
	Amount      decimal.Decimal
	Status      Outcome
	OutcomeSlot Slot
	Payout      decimal.Decimal
	CreatedAt   time.Time
}

// SessionClaims содержимое токена сессии
type SessionClaims struct {
	jwt.RegisteredClaims
	PlayerName string `json:"player_name"`
}
