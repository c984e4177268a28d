package dealer

import (
	"context"
	"fmt"
	"math/rand/v2"

	"roulette_casino/internal/model"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"

	"github.com/rs/zerolog"
)

var (
	winLines = []string{
		"Number %d... Beginner's luck. Enjoy it while it lasts.",
		"A win! Your balance is getting heavy. Play another?",
		"House loses this round. Don't let it get to your head.",
	}
	lossLines = []string{
		"Number %d. The math was definitely not on your side.",
		"Another loss? The casino's new chandelier thanks you.",
		"Ouch. That's gonna leave a dent in the bankroll.",
	}
	askLines = []string{
		"The wheel has no memory and neither do I. Place your bet.",
		"Ask the wheel, it's the only one here who knows.",
		"I just spin, I don't predict. Nice try though.",
	}
)

// Canned крупье без сети, отвечает готовыми фразами
type Canned struct {
	pick func(n int) int
	log  zerolog.Logger
}

func NewCanned() service.DealerService {
	return &Canned{pick: rand.IntN, log: logger.With("dealer")}
}

func (c *Canned) Ask(_ context.Context, _ string) string {
	return askLines[c.pick(len(askLines))]
}

func (c *Canned) Comment(_ context.Context, rec model.ResolutionRecord) string {
	lines := lossLines
	if rec.Won() {
		lines = winLines
	}
	// в первой фразе каждого набора подставляется номер
	i := c.pick(len(lines))
	if i == 0 {
		return fmt.Sprintf(lines[i], int(rec.Slot))
	}
	return lines[i]
}

func (c *Canned) CommentAsync(ctx context.Context, rec model.ResolutionRecord, done func(string)) {
	commentAsync(ctx, c, rec, done, c.log)
}

// commentAsync запрос комментария в отдельной горутине, не блокирует показ результата
func commentAsync(ctx context.Context, d service.DealerService, rec model.ResolutionRecord, done func(string), log zerolog.Logger) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("dealer comment panicked")
			}
		}()

		text := d.Comment(ctx, rec)
		if done != nil {
			done(text)
		}
	}()
}
