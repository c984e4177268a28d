package reveal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"roulette_casino/internal/model"
	"roulette_casino/internal/service/wheel"
	"roulette_casino/pkg/hub"
	"roulette_casino/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	defaultDuration     = 3 * time.Second
	defaultTick         = 16 * time.Millisecond
	defaultMinRotations = 5
	defaultMaxRotations = 10

	degreesPerPocket = 360.0 / float64(model.SlotCount)
)

var errNotResolving = errors.New("reveal was not begun")

type Config struct {
	Duration     time.Duration
	Tick         time.Duration
	MinRotations int
	MaxRotations int
}

// Finalizer вызывается после показа результата. Выполняется в отдельной горутине.
type Finalizer func(rec model.ResolutionRecord)

// Sequencer управляет показом результата: Idle -> Resolving -> Revealing -> Revealed -> Idle.
// Пока фаза не Idle, новые ставки не принимаются.
type Sequencer struct {
	cfg Config
	log zerolog.Logger

	mtx        sync.Mutex
	phase      model.RevealPhase
	angle      float64
	done       chan struct{}
	finalizers []Finalizer

	frames *hub.Hub[model.RevealFrame]
}

func New(cfg Config) *Sequencer {
	if cfg.Duration <= 0 {
		cfg.Duration = defaultDuration
	}
	if cfg.Tick <= 0 {
		cfg.Tick = defaultTick
	}
	if cfg.MinRotations <= 0 {
		cfg.MinRotations = defaultMinRotations
	}
	if cfg.MaxRotations < cfg.MinRotations {
		cfg.MaxRotations = max(defaultMaxRotations, cfg.MinRotations)
	}

	return &Sequencer{
		cfg:    cfg,
		log:    logger.With("reveal"),
		phase:  model.PhaseIdle,
		frames: hub.New[model.RevealFrame](),
	}
}

// OnRevealed регистрирует обработчик завершённого показа
func (s *Sequencer) OnRevealed(f Finalizer) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.finalizers = append(s.finalizers, f)
}

// Subscribe подписка на кадры всех показов. Медленный подписчик теряет
// промежуточные кадры, финальный кадр доходит всегда.
func (s *Sequencer) Subscribe(buffer int) (<-chan model.RevealFrame, func()) {
	return s.frames.Subscribe(buffer)
}

func (s *Sequencer) Phase() model.RevealPhase {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.phase
}

// Angle текущий угол колеса в градусах
func (s *Sequencer) Angle() float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.angle
}

// Begin блокирует приём ставок на время расчёта и показа
func (s *Sequencer) Begin() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.phase != model.PhaseIdle {
		return fmt.Errorf("%w: phase %s", model.ErrRevealInProgress, s.phase)
	}
	s.phase = model.PhaseResolving
	return nil
}

// Abort расчёт не состоялся, показывать нечего
func (s *Sequencer) Abort() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.phase == model.PhaseResolving {
		s.phase = model.PhaseIdle
	}
}

// Start запускает анимацию к ячейке из записи. Баланс к этому моменту уже зафиксирован.
// Возвращаемый канал закрывается после последнего кадра.
func (s *Sequencer) Start(ctx context.Context, rec model.ResolutionRecord) (<-chan model.RevealFrame, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.phase != model.PhaseResolving {
		return nil, errNotResolving
	}

	idx := wheel.PocketIndex(rec.Slot)
	if idx < 0 {
		return nil, fmt.Errorf("%w: slot %d", model.ErrInvalidBet, rec.Slot)
	}

	rotations := s.cfg.MinRotations + rand.IntN(s.cfg.MaxRotations-s.cfg.MinRotations+1)
	target := -(float64(idx) * degreesPerPocket) - 360*float64(rotations)

	steps := int(s.cfg.Duration/s.cfg.Tick) + 2
	out := make(chan model.RevealFrame, steps)
	done := make(chan struct{})

	s.phase = model.PhaseRevealing
	s.done = done

	go s.run(ctx, rec, s.angle, target, out, done)

	return out, nil
}

// Wait ждёт окончания текущего показа
func (s *Sequencer) Wait(ctx context.Context) error {
	s.mtx.Lock()
	done := s.done
	s.mtx.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sequencer) run(ctx context.Context, rec model.ResolutionRecord, from, to float64, out chan model.RevealFrame, done chan struct{}) {
	defer close(done)
	defer close(out)

	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	started := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.cancel(rec, out)
			return
		case now := <-ticker.C:
			t := float64(now.Sub(started)) / float64(s.cfg.Duration)
			if t >= 1 {
				s.finish(rec, to, out)
				return
			}

			angle := from + (to-from)*easeOutCubic(t)
			s.mtx.Lock()
			s.angle = angle
			s.mtx.Unlock()

			frame := model.RevealFrame{
				RoundID:  rec.RoundID,
				Slot:     rec.Slot,
				Phase:    model.PhaseRevealing,
				Fraction: t,
				Angle:    angle,
			}
			select {
			case out <- frame:
			default:
			}
			s.frames.Publish(frame)
		}
	}
}

func (s *Sequencer) finish(rec model.ResolutionRecord, target float64, out chan model.RevealFrame) {
	final := normalizeAngle(target)

	s.mtx.Lock()
	s.angle = final
	s.phase = model.PhaseRevealed
	finalizers := make([]Finalizer, len(s.finalizers))
	copy(finalizers, s.finalizers)
	s.mtx.Unlock()

	s.emitLast(out, model.RevealFrame{
		RoundID:  rec.RoundID,
		Slot:     rec.Slot,
		Phase:    model.PhaseRevealed,
		Fraction: 1,
		Angle:    final,
		Done:     true,
	})

	for _, f := range finalizers {
		go s.runFinalizer(f, rec)
	}

	s.mtx.Lock()
	s.phase = model.PhaseIdle
	s.mtx.Unlock()

	s.log.Debug().Str("round", rec.RoundID.String()).Int("slot", int(rec.Slot)).Float64("angle", final).Msg("reveal finished")
}

// cancel показ прерван. Бухгалтерия уже окончательная, компенсировать нечего.
func (s *Sequencer) cancel(rec model.ResolutionRecord, out chan model.RevealFrame) {
	s.mtx.Lock()
	s.angle = normalizeAngle(s.angle)
	angle := s.angle
	s.phase = model.PhaseIdle
	s.mtx.Unlock()

	s.emitLast(out, model.RevealFrame{
		RoundID:   rec.RoundID,
		Slot:      rec.Slot,
		Phase:     model.PhaseIdle,
		Angle:     angle,
		Done:      true,
		Cancelled: true,
	})

	s.log.Warn().Str("round", rec.RoundID.String()).Msg("reveal cancelled")
}

func (s *Sequencer) emitLast(out chan model.RevealFrame, frame model.RevealFrame) {
	// в out пишет только эта горутина, после вытеснения место точно есть
	select {
	case out <- frame:
	default:
		select {
		case <-out:
		default:
		}
		select {
		case out <- frame:
		default:
		}
	}
	s.frames.PublishLast(frame)
}

func (s *Sequencer) runFinalizer(f Finalizer, rec model.ResolutionRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("reveal finalizer panicked")
		}
	}()
	f(rec)
}

// easeOutCubic 1 + (t-1)^3
func easeOutCubic(t float64) float64 {
	p := t - 1
	return p*p*p + 1
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a == 0 {
		return 0
	}
	return a
}
