package roulette

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"roulette_casino/internal/model"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
)

type fakeTxManager struct {
	mtx sync.Mutex
	txs int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mtx.Lock()
	m.txs++
	m.mtx.Unlock()
	return fn(ctx)
}

func (m *fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type fakeStore struct {
	mtx     sync.Mutex
	nextID  int64
	players map[int64]*model.PlayerAccount
	history []model.HistoryRecord

	failUpdate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{players: make(map[int64]*model.PlayerAccount)}
}

func (f *fakeStore) LoadPlayer(_ context.Context, name string) (*model.PlayerAccount, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, p := range f.players {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (f *fakeStore) GetPlayer(_ context.Context, id int64) (*model.PlayerAccount, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	p, ok := f.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreatePlayer(_ context.Context, name string, balance decimal.Decimal) (int64, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.nextID++
	f.players[f.nextID] = &model.PlayerAccount{ID: f.nextID, Name: name, Balance: balance}
	return f.nextID, nil
}

func (f *fakeStore) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	p, ok := f.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p.Balance = balance
	return nil
}

func (f *fakeStore) DeletePlayer(_ context.Context, id int64) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	delete(f.players, id)
	return nil
}

func (f *fakeStore) balance(id int64) decimal.Decimal {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.players[id].Balance
}

func (f *fakeStore) RecordHistory(_ context.Context, rec model.HistoryRecord) (int64, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	rec.ID = int64(len(f.history) + 1)
	f.history = append(f.history, rec)
	return rec.ID, nil
}

func (f *fakeStore) FetchHistory(_ context.Context, playerID int64, limit int) ([]model.HistoryRecord, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	var out []model.HistoryRecord
	for _, h := range f.history {
		if h.PlayerID == playerID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ClearHistory(_ context.Context, playerID int64) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	kept := f.history[:0]
	for _, h := range f.history {
		if h.PlayerID != playerID {
			kept = append(kept, h)
		}
	}
	f.history = kept
	return nil
}

type fakeDealer struct {
	mtx      sync.Mutex
	comments int
}

func (d *fakeDealer) Ask(context.Context, string) string { return "the house always wins" }

func (d *fakeDealer) Comment(_ context.Context, rec model.ResolutionRecord) string {
	d.mtx.Lock()
	d.comments++
	d.mtx.Unlock()
	return "landed on " + rec.Slot.String()
}

func (d *fakeDealer) CommentAsync(ctx context.Context, rec model.ResolutionRecord, done func(string)) {
	go done(d.Comment(ctx, rec))
}

func (d *fakeDealer) count() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.comments
}

type gameConfig struct {
	balance  decimal.Decimal
	duration time.Duration
}

func (g gameConfig) StartingBalance() decimal.Decimal { return g.balance }
func (g gameConfig) HistoryLimit() int                { return 20 }
func (g gameConfig) RecentWindow() int                { return 10 }
func (g gameConfig) RevealDuration() time.Duration    { return g.duration }
func (g gameConfig) RevealTick() time.Duration        { return 2 * time.Millisecond }
func (g gameConfig) MinRotations() int                { return 5 }
func (g gameConfig) MaxRotations() int                { return 10 }

var errDiskFull = errors.New("disk full")
