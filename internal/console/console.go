package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"roulette_casino/internal/model"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultName    = "PlayerOne"
	historyLimit   = 10
	barWidth       = 30
	defaultWaitFor = 6 * time.Second
)

var errQuit = errors.New("quit")

type Deps struct {
	Serv service.RouletteService
	In   io.Reader
	Out  io.Writer
	// CommentWait сколько ждать реплику крупье после показа
	CommentWait time.Duration
}

// Console текстовый интерфейс рулетки (REPL)
type Console struct {
	serv        service.RouletteService
	in          *bufio.Scanner
	lines       chan string
	stop        chan struct{}
	out         io.Writer
	commentWait time.Duration
	log         zerolog.Logger
}

func New(deps Deps) *Console {
	wait := deps.CommentWait
	if wait <= 0 {
		wait = defaultWaitFor
	}
	return &Console{
		serv:        deps.Serv,
		in:          bufio.NewScanner(deps.In),
		out:         deps.Out,
		commentWait: wait,
		log:         logger.With("console"),
	}
}

// Run крутит цикл до выхода игрока, конца ввода или отмены ctx
func (c *Console) Run(ctx context.Context) error {
	c.lines = make(chan string)
	c.stop = make(chan struct{})
	defer close(c.stop)
	go c.readLines()

	c.println(strings.Repeat("=", 40))
	c.println("ROULETTE - CONSOLE EDITION")
	c.println(strings.Repeat("=", 40))

	for {
		name, ok := c.prompt(ctx, "Enter your VIP Name: ")
		if !ok {
			return nil
		}
		if name == "" {
			name = defaultName
		}

		player, err := c.serv.BeginSession(ctx, name)
		if err != nil {
			c.printf("Could not open a session: %v\n", err)
			continue
		}
		c.printf("\nWelcome, %s. Your bankroll is $%s\n", player.Name, money(player.Balance))

		err = c.menu(ctx)
		c.serv.EndSession()
		switch {
		case ctx.Err() != nil:
			// прерывание (Ctrl+C) считается нормальным выходом
			c.println("")
			return nil
		case errors.Is(err, errQuit):
			c.println("Cashing out. See you next time!")
			return nil
		case err != nil:
			return err
		}
		// Банкрот: возвращаемся к вводу имени
	}
}

// menu возвращает nil, если игрок обанкротился, errQuit на выходе
func (c *Console) menu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		player, err := c.serv.Current()
		if err != nil {
			return err
		}

		c.println("\n--- OPTIONS MENU ---")
		c.println("1. Play a Spin (Place Bet)")
		c.println("2. View History & Stats")
		c.println("3. Clear My History")
		c.println("4. Ask the Dealer")
		c.println("5. Exit Casino")

		choice, ok := c.prompt(ctx, fmt.Sprintf("\n[Balance: $%s] Select option (1-5): ", money(player.Balance)))
		if !ok {
			return errQuit
		}

		switch choice {
		case "1":
			bankrupt, err := c.handleBet(ctx)
			if err != nil {
				return err
			}
			if bankrupt {
				c.println("\nYou're out of chips. The house thanks you for your contribution.")
				return nil
			}
		case "2":
			c.showHistory(ctx)
		case "3":
			c.clearHistory(ctx)
		case "4":
			c.askDealer(ctx)
		case "5":
			return errQuit
		default:
			c.println("Invalid option. Please choose 1-5.")
		}
	}
}

// handleBet собирает ставку, крутит колесо и показывает результат.
// true, если после раунда игрок банкрот.
func (c *Console) handleBet(ctx context.Context) (bool, error) {
	c.println("\n--- PLACE YOUR BET ---")
	c.println("1. Number Bet (0-36)")
	c.println("2. Color Bet (Red / Black)")
	c.println("3. Parity Bet (Even / Odd)")

	category, ok := c.prompt(ctx, "Select bet category (1-3): ")
	if !ok {
		return false, errQuit
	}
	kind, pickPrompt := "", ""
	switch category {
	case "1":
		kind, pickPrompt = string(model.BetNumber), "Enter number (0-36): "
	case "2":
		kind, pickPrompt = string(model.BetColor), "Red or Black? "
	case "3":
		kind, pickPrompt = string(model.BetParity), "Even or Odd? "
	default:
		c.println("Invalid category.")
		return false, nil
	}

	raw, ok := c.prompt(ctx, "Enter wager amount ($): ")
	if !ok {
		return false, errQuit
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		c.println("Amount must be a number.")
		return false, nil
	}
	if !amount.IsPositive() {
		c.println("Wager must be positive.")
		return false, nil
	}
	if player, err := c.serv.Current(); err == nil && amount.GreaterThan(player.Balance) {
		c.println("Insufficient funds!")
		return false, nil
	}

	pick, ok := c.prompt(ctx, pickPrompt)
	if !ok {
		return false, errQuit
	}
	bet, err := model.ParseBet(kind, pick, amount)
	if err != nil {
		c.printf("Invalid bet: %v\n", err)
		return false, nil
	}

	frames, stopFrames := c.serv.Reveals(128)
	defer stopFrames()
	comments, stopComments := c.serv.Comments(1)
	defer stopComments()

	c.println("\nSpinning the wheel...")
	rec, err := c.serv.PlaceBet(ctx, bet)
	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		c.println("Insufficient funds!")
		return false, nil
	case errors.Is(err, model.ErrRevealInProgress):
		c.println("The wheel is still spinning. Wait for it.")
		return false, nil
	case errors.Is(err, model.ErrPersistence) && rec != nil:
		c.log.Error().Err(err).Msg("round not saved")
		c.println("Warning: this round could not be saved.")
	case err != nil:
		c.printf("Bet failed: %v\n", err)
		return false, nil
	}

	c.showReveal(ctx, rec.RoundID.String(), frames)
	if err := c.serv.WaitReveal(ctx); err != nil {
		return false, err
	}

	c.printf("\n>> The ball landed on: %d (%s) <<\n", rec.Slot, rec.Slot.Color())
	if rec.Won() {
		c.printf("WINNER! Payout: $%s\n", money(rec.Payout))
	} else {
		c.printf("LOSS. You lost $%s\n", money(rec.Bet.Wager()))
	}
	c.printf("Balance: $%s\n", money(rec.ResultingBalance))

	if rec.Bankrupt() {
		return true, nil
	}

	c.waitComment(ctx, rec.RoundID.String(), comments)
	return false, nil
}

// showReveal рисует полосу прогресса, пока колесо не остановится
func (c *Console) showReveal(ctx context.Context, roundID string, frames <-chan model.RevealFrame) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			if f.RoundID.String() != roundID {
				continue
			}
			c.drawBar(f.Fraction)
			if f.Done || f.Cancelled {
				c.println("")
				return
			}
		}
	}
}

func (c *Console) drawBar(fraction float64) {
	filled := int(fraction * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	c.printf("\r[%s%s] %3.0f%%", strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), fraction*100)
}

func (c *Console) waitComment(ctx context.Context, roundID string, comments <-chan model.DealerComment) {
	timer := time.NewTimer(c.commentWait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case cm, ok := <-comments:
			if !ok {
				return
			}
			if cm.RoundID.String() != roundID {
				continue
			}
			c.printf("Dealer: %s\n", cm.Text)
			return
		}
	}
}

func (c *Console) showHistory(ctx context.Context) {
	history, err := c.serv.History(ctx, historyLimit)
	if err != nil {
		c.printf("Could not load history: %v\n", err)
		return
	}

	c.println("\n--- RECENT ACTION ---")
	if len(history) == 0 {
		c.println("No action recorded yet.")
	}
	for _, h := range history {
		c.printf("[%s] Bet: %s | Wager: $%s | Status: %s | Rolled: #%d\n",
			h.CreatedAt.Local().Format("2006-01-02 15:04:05"), h.BetDesc, money(h.Amount), h.Status, h.OutcomeSlot)
	}

	stats, err := c.serv.Stats()
	if err != nil {
		return
	}
	c.println("\n--- THIS SESSION ---")
	c.printf("Spins: %d | Wins: %d | Losses: %d | RTP: %.1f%%\n", stats.Spins, stats.Wins, stats.Losses, stats.RTP)
	c.printf("Wagered: $%s | Paid out: $%s\n", money(stats.TotalWagered), money(stats.TotalPayout))
	if len(stats.RecentOutcomes) > 0 {
		c.printf("Recent: %s\n", joinSlots(stats.RecentOutcomes))
	}
	if len(stats.HotNumbers) > 0 {
		c.printf("Hot numbers: %s\n", joinSlots(stats.HotNumbers))
	}
}

func (c *Console) clearHistory(ctx context.Context) {
	confirm, ok := c.prompt(ctx, "Are you sure you want to clear your history? (y/n): ")
	if !ok || strings.ToLower(confirm) != "y" {
		return
	}
	if err := c.serv.ClearHistory(ctx); err != nil {
		c.printf("Could not clear history: %v\n", err)
		return
	}
	c.println("History cleared.")
}

func (c *Console) askDealer(ctx context.Context) {
	question, ok := c.prompt(ctx, "\nAsk the dealer a question: ")
	if !ok || question == "" {
		return
	}
	c.println("Thinking...")
	c.printf("\nDealer: %s\n", c.serv.AskDealer(ctx, question))
}

// prompt false, если ввод закончился или ctx отменён
func (c *Console) prompt(ctx context.Context, text string) (string, bool) {
	c.printf("%s", text)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		return line, ok
	}
}

// readLines читает ввод в отдельной горутине, чтобы prompt мог ждать и ctx
func (c *Console) readLines() {
	defer close(c.lines)
	for c.in.Scan() {
		select {
		case c.lines <- strings.TrimSpace(c.in.Text()):
		case <-c.stop:
			return
		}
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, v ...interface{}) {
	fmt.Fprintf(c.out, format, v...)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func joinSlots(slots []model.Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
