package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type BetKind string

const (
	BetNumber BetKind = "number"
	BetColor  BetKind = "color"
	BetParity BetKind = "parity"
)

// Множители выплат: общий возврат = ставка * множитель
const (
	NumberPayoutMultiplier int64 = 36 // 35:1
	ColorPayoutMultiplier  int64 = 2  // 1:1
	ParityPayoutMultiplier int64 = 2  // 1:1
)

// Bet ставка одного из трёх видов. Создаётся только через конструкторы
// и после создания не меняется.
type Bet struct {
	kind   BetKind
	wager  decimal.Decimal
	target Slot
	color  Color
	parity Parity
}

func NewNumberBet(wager decimal.Decimal, target int) (Bet, error) {
	if err := validateWager(wager); err != nil {
		return Bet{}, err
	}
	slot, err := NewSlot(target)
	if err != nil {
		return Bet{}, err
	}
	return Bet{kind: BetNumber, wager: wager, target: slot}, nil
}

func NewColorBet(wager decimal.Decimal, color string) (Bet, error) {
	if err := validateWager(wager); err != nil {
		return Bet{}, err
	}
	c := Color(normalizeToken(color))
	if c != ColorRed && c != ColorBlack {
		return Bet{}, fmt.Errorf("%w: unknown color %q", ErrInvalidBet, color)
	}
	return Bet{kind: BetColor, wager: wager, color: c}, nil
}

func NewParityBet(wager decimal.Decimal, parity string) (Bet, error) {
	if err := validateWager(wager); err != nil {
		return Bet{}, err
	}
	p := Parity(normalizeToken(parity))
	if p != ParityEven && p != ParityOdd {
		return Bet{}, fmt.Errorf("%w: unknown parity %q", ErrInvalidBet, parity)
	}
	return Bet{kind: BetParity, wager: wager, parity: p}, nil
}

// ParseBet собирает ставку из вида и выбора игрока (номер, цвет или чётность)
func ParseBet(kind string, pick string, wager decimal.Decimal) (Bet, error) {
	switch BetKind(normalizeToken(kind)) {
	case BetNumber:
		n, err := strconv.Atoi(strings.TrimSpace(pick))
		if err != nil {
			return Bet{}, fmt.Errorf("%w: number %q", ErrInvalidBet, pick)
		}
		return NewNumberBet(wager, n)
	case BetColor:
		return NewColorBet(wager, pick)
	case BetParity:
		return NewParityBet(wager, pick)
	default:
		return Bet{}, fmt.Errorf("%w: unknown bet kind %q", ErrInvalidBet, kind)
	}
}

func validateWager(wager decimal.Decimal) error {
	if !wager.IsPositive() {
		return fmt.Errorf("%w: wager must be positive, got %s", ErrInvalidBet, wager.String())
	}
	return nil
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (b Bet) Kind() BetKind          { return b.kind }
func (b Bet) Wager() decimal.Decimal { return b.wager }

// IsZero ставка не была создана конструктором
func (b Bet) IsZero() bool { return b.kind == "" }

// Target номер для ставки на число
func (b Bet) Target() Slot { return b.target }

// Pick выбор игрока в виде строки: "17", "red", "even"
func (b Bet) Pick() string {
	switch b.kind {
	case BetNumber:
		return b.target.String()
	case BetColor:
		return string(b.color)
	case BetParity:
		return string(b.parity)
	}
	return ""
}

// JudgesWin выигрывает ли ставка при выпавшей ячейке.
// Ноль проигрывает все ставки на цвет и чётность.
func (b Bet) JudgesWin(slot Slot) bool {
	switch b.kind {
	case BetNumber:
		return b.target == slot
	case BetColor:
		return slot != 0 && slot.Color() == b.color
	case BetParity:
		p, ok := slot.Parity()
		return ok && p == b.parity
	}
	return false
}

// PayoutMultiplier фиксированный множитель для вида ставки
func (b Bet) PayoutMultiplier() int64 {
	switch b.kind {
	case BetNumber:
		return NumberPayoutMultiplier
	case BetColor:
		return ColorPayoutMultiplier
	case BetParity:
		return ParityPayoutMultiplier
	}
	return 0
}

// Description человекочитаемое описание для истории: "Number 17", "Color Red", "Parity Even"
func (b Bet) Description() string {
	title := cases.Title(language.English)
	switch b.kind {
	case BetNumber:
		return "Number " + b.target.String()
	case BetColor:
		return "Color " + title.String(string(b.color))
	case BetParity:
		return "Parity " + title.String(string(b.parity))
	}
	return "Unknown Bet"
}

func (b Bet) String() string {
	return fmt.Sprintf("%s (%s)", b.Description(), b.wager.StringFixed(2))
}
