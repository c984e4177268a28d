package session

import "github.com/shopspring/decimal"

type BeginRequest struct {
	Name    string           `json:"name" validate:"required,max=64"` // Имя игрока
	Balance *decimal.Decimal `json:"balance,omitempty"`               // Стартовый баланс для нового игрока, по умолчанию из конфига
}

type PlayerResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type BeginResponse struct {
	Token  string         `json:"token"` // Токен сессии (HS256)
	Player PlayerResponse `json:"player"`
}
