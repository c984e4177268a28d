package roulette

import (
	"sync"

	"roulette_casino/internal/model"

	"github.com/shopspring/decimal"
)

// Account игрок текущей сессии. Баланс меняется только через Engine.Resolve.
type Account struct {
	mu      sync.Mutex
	id      int64
	name    string
	balance decimal.Decimal
}

func NewAccount(p model.PlayerAccount) *Account {
	return &Account{
		id:      p.ID,
		name:    p.Name,
		balance: p.Balance,
	}
}

func (a *Account) ID() int64    { return a.id }
func (a *Account) Name() string { return a.name }

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// CanAfford хватает ли баланса на ставку
func (a *Account) CanAfford(amount decimal.Decimal) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance.GreaterThanOrEqual(amount)
}

// Bankrupt баланс кончился, сессия окончена
func (a *Account) Bankrupt() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.balance.IsPositive()
}

func (a *Account) Snapshot() model.PlayerAccount {
	a.mu.Lock()
	defer a.mu.Unlock()
	return model.PlayerAccount{ID: a.id, Name: a.name, Balance: a.balance}
}

// applyDelta вызывающий держит a.mu
func (a *Account) applyDelta(delta decimal.Decimal) decimal.Decimal {
	a.balance = a.balance.Add(delta)
	return a.balance
}
