package wheel

import (
	"sync"

	"roulette_casino/internal/model"
)

// FixedWheel отдаёт заранее заданные ячейки по кругу. Используется в тестах
// и для воспроизведения раундов.
type FixedWheel struct {
	mtx   sync.Mutex
	slots []model.Slot
	next  int
	draws int
}

func Fixed(slots ...model.Slot) *FixedWheel {
	if len(slots) == 0 {
		slots = []model.Slot{0}
	}
	return &FixedWheel{slots: slots}
}

func (f *FixedWheel) Spin() model.Slot {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	s := f.slots[f.next]
	f.next = (f.next + 1) % len(f.slots)
	f.draws++
	return s
}

// Draws сколько раз крутили колесо
func (f *FixedWheel) Draws() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.draws
}
