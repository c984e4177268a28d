package model

import (
	servModel "roulette_casino/internal/model"

	"github.com/shopspring/decimal"
)

// Состояние сессии игрока
type SessionState struct {
	TotalSpins  int             // Сколько всего спинов сделано
	Wins        int             // Выигранных раундов
	Losses      int             // Проигранных раундов
	TotalBet    decimal.Decimal // Сумма всех ставок
	TotalPayout decimal.Decimal // Сумма всех выплат

	CurrentRTP float64 // Текущий RTP = (TotalPayout/TotalBet)*100

	BiggestWin  decimal.Decimal // Максимальный чистый выигрыш за раунд
	BiggestLoss decimal.Decimal // Максимальная проигранная ставка

	SpinWindow []SpinResult // Окно последних спинов, свежие первыми
	WindowSize int          // Размер окна
}

// Результат спина для окна
type SpinResult struct {
	Slot   servModel.Slot
	Bet    decimal.Decimal
	Payout decimal.Decimal
}
