package model

import "github.com/shopspring/decimal"

// SessionStats статистика текущей сессии
type SessionStats struct {
	Spins          int
	Wins           int
	Losses         int
	TotalWagered   decimal.Decimal
	TotalPayout    decimal.Decimal
	RTP            float64 // TotalPayout / TotalWagered * 100
	BiggestWin     decimal.Decimal
	BiggestLoss    decimal.Decimal
	RecentOutcomes []Slot // последние выпавшие, самые свежие первыми
	HotNumbers     []Slot
}
