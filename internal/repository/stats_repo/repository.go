package stats_repo

import (
	"sort"
	"sync"

	servModel "roulette_casino/internal/model"
	"roulette_casino/internal/repository"
	repoModel "roulette_casino/internal/repository/stats_repo/model"

	"github.com/shopspring/decimal"
)

const (
	// defaultWindowSize сколько последних исходов показываем
	defaultWindowSize = 10
	// minSpinsForHot после скольких исходов начинаем искать горячие номера
	minSpinsForHot = 5
	// hotNumbersCount сколько горячих номеров показываем
	hotNumbersCount = 2
)

var hundred = decimal.NewFromInt(100)

// Реализация репозитория для хранения статистики сессии
type StatsRepo struct {
	mtx   sync.RWMutex
	state repoModel.SessionState
}

// NewStatsRepository Конструктор репозитория с пустым состоянием
func NewStatsRepository(windowSize int) repository.StatsRepository {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &StatsRepo{
		state: initialState(windowSize),
	}
}

func initialState(windowSize int) repoModel.SessionState {
	return repoModel.SessionState{
		TotalBet:    decimal.Zero,
		TotalPayout: decimal.Zero,
		BiggestWin:  decimal.Zero,
		BiggestLoss: decimal.Zero,
		SpinWindow:  make([]repoModel.SpinResult, 0, windowSize),
		WindowSize:  windowSize,
	}
}

// Reset Сброс статистики при начале новой сессии
func (r *StatsRepo) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.state = initialState(r.state.WindowSize)
}

// Record Обновление статистики после раунда
func (r *StatsRepo) Record(rec servModel.ResolutionRecord) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	wager := rec.Bet.Wager()

	r.state.TotalSpins++
	r.state.TotalBet = r.state.TotalBet.Add(wager)
	r.state.TotalPayout = r.state.TotalPayout.Add(rec.Payout)
	if r.state.TotalBet.IsPositive() {
		r.state.CurrentRTP = r.state.TotalPayout.Div(r.state.TotalBet).Mul(hundred).InexactFloat64()
	}

	if rec.Won() {
		r.state.Wins++
		if rec.Delta.GreaterThan(r.state.BiggestWin) {
			r.state.BiggestWin = rec.Delta
		}
	} else {
		r.state.Losses++
		if wager.GreaterThan(r.state.BiggestLoss) {
			r.state.BiggestLoss = wager
		}
	}

	// Добавляем спин в начало окна
	r.state.SpinWindow = append([]repoModel.SpinResult{{
		Slot:   rec.Slot,
		Bet:    wager,
		Payout: rec.Payout,
	}}, r.state.SpinWindow...)

	// Поддерживаем размер окна
	if len(r.state.SpinWindow) > r.state.WindowSize {
		r.state.SpinWindow = r.state.SpinWindow[:r.state.WindowSize]
	}
}

// Stats Копия текущей статистики
func (r *StatsRepo) Stats() servModel.SessionStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	recent := make([]servModel.Slot, len(r.state.SpinWindow))
	for i, s := range r.state.SpinWindow {
		recent[i] = s.Slot
	}

	return servModel.SessionStats{
		Spins:          r.state.TotalSpins,
		Wins:           r.state.Wins,
		Losses:         r.state.Losses,
		TotalWagered:   r.state.TotalBet,
		TotalPayout:    r.state.TotalPayout,
		RTP:            r.state.CurrentRTP,
		BiggestWin:     r.state.BiggestWin,
		BiggestLoss:    r.state.BiggestLoss,
		RecentOutcomes: recent,
		HotNumbers:     hotNumbers(recent),
	}
}

// hotNumbers Самые частые номера в окне, выпавшие больше одного раза.
// При равной частоте выше тот, что выпал позже.
func hotNumbers(recent []servModel.Slot) []servModel.Slot {
	if len(recent) < minSpinsForHot {
		return nil
	}

	counts := make(map[servModel.Slot]int)
	order := make([]servModel.Slot, 0, len(recent))
	for _, s := range recent {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	hot := make([]servModel.Slot, 0, hotNumbersCount)
	for _, s := range order {
		if len(hot) == hotNumbersCount || counts[s] < 2 {
			break
		}
		hot = append(hot, s)
	}
	return hot
}
