package dealer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"roulette_casino/internal/model"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3"
	defaultTimeout = 5 * time.Second

	generatePath = "/api/generate"
	promptPrefix = "You are a snarky casino roulette dealer. Answer this question briefly: "

	// OfflineMessage ответ, когда сервис генерации недоступен
	OfflineMessage = "Dealer AI is offline. Please make sure Ollama is running in Docker (http://localhost:11434)."
	// SilentMessage ответ без текста
	SilentMessage = "The AI is silent..."

	maxResponseBytes = 1 << 20
)

// Config настройки клиента локального сервиса генерации текста (Ollama-совместимый /api/generate)
type Config struct {
	// BaseURL адрес сервиса, по умолчанию http://localhost:11434
	BaseURL string
	// Model имя модели, по умолчанию llama3
	Model string
	// Timeout на весь запрос, по умолчанию 5 секунд
	Timeout time.Duration
	// HTTPClient можно подменить в тестах
	HTTPClient *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config) service.DealerService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:  cfg,
		http: httpClient,
		log:  logger.With("dealer"),
	}
}

// Ask вопрос крупье. Любая ошибка превращается в OfflineMessage.
func (c *Client) Ask(ctx context.Context, question string) string {
	text, err := c.generate(ctx, promptPrefix+question)
	if err != nil {
		c.log.Warn().Err(err).Msg("dealer request failed")
		return OfflineMessage
	}
	return text
}

// Comment реплика по итогам раунда
func (c *Client) Comment(ctx context.Context, rec model.ResolutionRecord) string {
	return c.Ask(ctx, describeRound(rec))
}

func (c *Client) CommentAsync(ctx context.Context, rec model.ResolutionRecord, done func(string)) {
	commentAsync(ctx, c, rec, done, c.log)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", model.ErrCommentaryUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", model.ErrCommentaryUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrCommentaryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", fmt.Errorf("%w: status %d", model.ErrCommentaryUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", model.ErrCommentaryUnavailable, err)
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return SilentMessage, nil
	}
	return text, nil
}

func describeRound(rec model.ResolutionRecord) string {
	verdict := "lost"
	if rec.Won() {
		verdict = fmt.Sprintf("won %s", rec.Delta.StringFixed(2))
	}
	return fmt.Sprintf("The wheel landed on %d (%s). The player bet %s on %s and %s. Their balance is now %s. Comment on it.",
		int(rec.Slot), rec.Slot.Color(), rec.Bet.Wager().StringFixed(2), rec.Bet.Description(), verdict,
		rec.ResultingBalance.StringFixed(2))
}
