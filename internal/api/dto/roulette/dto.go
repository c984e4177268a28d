package roulette

import (
	"time"

	"github.com/shopspring/decimal"
)

type BetRequest struct {
	Kind   string          `json:"kind" validate:"required,max=16"` // Тип ставки: number / color / parity, регистр не важен
	Pick   string          `json:"pick" validate:"required,max=8"`  // Число 0-36, red/black или even/odd
	Amount decimal.Decimal `json:"amount"`                          // Ставка (>0)
}

type BetResponse struct {
	RoundID          string          `json:"round_id"`
	Bet              string          `json:"bet"`     // Описание ставки
	Slot             int             `json:"slot"`    // Выпавшее число
	Color            string          `json:"color"`   // Цвет выпавшего числа
	Outcome          string          `json:"outcome"` // WIN / LOSS
	Payout           decimal.Decimal `json:"payout"`
	Delta            decimal.Decimal `json:"delta"`
	Balance          decimal.Decimal `json:"balance"` // Баланс после
	Bankrupt         bool            `json:"bankrupt"`
	PersistenceError string          `json:"persistence_error,omitempty"`
}

type HistoryItem struct {
	ID        int64           `json:"id"`
	Bet       string          `json:"bet"`
	Amount    decimal.Decimal `json:"amount"`
	Outcome   string          `json:"outcome"`
	Slot      int             `json:"slot"`
	Payout    decimal.Decimal `json:"payout"`
	CreatedAt time.Time       `json:"created_at"`
}

type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

type StatsResponse struct {
	Spins          int             `json:"spins"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	TotalWagered   decimal.Decimal `json:"total_wagered"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	RTP            float64         `json:"rtp"`
	BiggestWin     decimal.Decimal `json:"biggest_win"`
	BiggestLoss    decimal.Decimal `json:"biggest_loss"`
	RecentOutcomes []int           `json:"recent_outcomes"` // Свежие первыми
	HotNumbers     []int           `json:"hot_numbers"`
}

// RevealMessage сообщение в websocket показа
type RevealMessage struct {
	Type      string  `json:"type"` // frame / comment
	RoundID   string  `json:"round_id"`
	Slot      *int    `json:"slot,omitempty"`
	Phase     string  `json:"phase,omitempty"`
	Fraction  float64 `json:"fraction,omitempty"`
	Angle     float64 `json:"angle,omitempty"`
	Done      bool    `json:"done,omitempty"`
	Cancelled bool    `json:"cancelled,omitempty"`
	Text      string  `json:"text,omitempty"`
}
