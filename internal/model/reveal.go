package model

import "github.com/google/uuid"

// RevealPhase состояние показа результата
type RevealPhase int

const (
	PhaseIdle RevealPhase = iota
	PhaseResolving
	PhaseRevealing
	PhaseRevealed
)

func (p RevealPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseRevealing:
		return "revealing"
	case PhaseRevealed:
		return "revealed"
	}
	return "unknown"
}

// RevealFrame один кадр анимации колеса
type RevealFrame struct {
	RoundID   uuid.UUID
	Slot      Slot
	Phase     RevealPhase
	Fraction  float64 // доля прошедшего времени, 0..1
	Angle     float64 // угол колеса в градусах
	Done      bool
	Cancelled bool
}

// DealerComment реплика крупье по итогам раунда
type DealerComment struct {
	RoundID uuid.UUID
	Text    string
}
