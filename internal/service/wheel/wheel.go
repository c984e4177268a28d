package wheel

import (
	"math/rand/v2"
	"sync"

	"roulette_casino/internal/model"
)

// Layout порядок ячеек на европейском колесе по часовой стрелке, начиная с нуля
var Layout = [model.SlotCount]model.Slot{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var pocketIndex = func() map[model.Slot]int {
	idx := make(map[model.Slot]int, len(Layout))
	for i, s := range Layout {
		idx[s] = i
	}
	return idx
}()

// PocketIndex позиция ячейки на колесе, -1 для несуществующей
func PocketIndex(slot model.Slot) int {
	i, ok := pocketIndex[slot]
	if !ok {
		return -1
	}
	return i
}

type Wheel interface {
	Spin() model.Slot
}

type randomWheel struct {
	mtx sync.Mutex
	rnd *rand.Rand
}

// New колесо поверх заданного источника, для воспроизводимых прогонов
func New(src rand.Source) Wheel {
	return &randomWheel{rnd: rand.New(src)}
}

// NewSeeded колесо с PCG источником и фиксированным сидом
func NewSeeded(seed uint64) Wheel {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (w *randomWheel) Spin() model.Slot {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return model.Slot(w.rnd.IntN(model.SlotCount))
}

type globalWheel struct{}

// NewRandom колесо на глобальном генераторе рантайма
func NewRandom() Wheel {
	return globalWheel{}
}

func (globalWheel) Spin() model.Slot {
	return model.Slot(rand.IntN(model.SlotCount))
}
