package model

import "fmt"

// Slot номер ячейки колеса, от 0 до 36
type Slot int

const (
	MinSlot Slot = 0
	MaxSlot Slot = 36
	// SlotCount количество ячеек европейского колеса
	SlotCount = int(MaxSlot) + 1
)

type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

type Parity string

const (
	ParityEven Parity = "even"
	ParityOdd  Parity = "odd"
)

// Красные ячейки, фиксированный набор из 18 чисел
var redSlots = map[Slot]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// NewSlot проверяет диапазон и возвращает ячейку
func NewSlot(n int) (Slot, error) {
	s := Slot(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: slot %d outside [%d,%d]", ErrInvalidBet, n, MinSlot, MaxSlot)
	}
	return s, nil
}

func (s Slot) Valid() bool {
	return s >= MinSlot && s <= MaxSlot
}

// Color 0 - зелёная, остальные красные или чёрные
func (s Slot) Color() Color {
	if s == 0 {
		return ColorGreen
	}
	if _, ok := redSlots[s]; ok {
		return ColorRed
	}
	return ColorBlack
}

// Parity для 0 чётность не определена, второй результат false
func (s Slot) Parity() (Parity, bool) {
	if s == 0 {
		return "", false
	}
	if s%2 == 0 {
		return ParityEven, true
	}
	return ParityOdd, true
}

func (s Slot) String() string {
	return fmt.Sprintf("%d", int(s))
}
