package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dealerDTO "roulette_casino/internal/api/dto/dealer"
	rouletteDTO "roulette_casino/internal/api/dto/roulette"
	sessionDTO "roulette_casino/internal/api/dto/session"
	"roulette_casino/internal/config/env"
	"roulette_casino/internal/model"
	"roulette_casino/internal/repository/sqlite_repo"
	"roulette_casino/internal/repository/stats_repo"
	"roulette_casino/internal/service"
	"roulette_casino/internal/service/dealer"
	"roulette_casino/internal/service/reveal"
	"roulette_casino/internal/service/roulette"
	"roulette_casino/internal/service/wheel"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("router-test-secret")

type testEnv struct {
	srv   *httptest.Server
	serv  service.RouletteService
	wheel *wheel.FixedWheel
}

func newTestEnv(t *testing.T, revealDuration string, slots ...model.Slot) *testEnv {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "game:\n  starting_balance: \"100\"\nreveal:\n  duration: " + revealDuration + "\n  tick: 2ms\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))
	gameCfg, err := env.NewGameConfigFromYAML(cfgPath)
	require.NoError(t, err)

	store, err := sqlite_repo.New(filepath.Join(dir, "casino.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	txm, err := manager.New(trmsql.NewDefaultFactory(store.DB()))
	require.NoError(t, err)

	w := wheel.Fixed(slots...)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serv := roulette.NewRouletteService(ctx, roulette.Deps{
		PlayerRepo:  store,
		HistoryRepo: store,
		StatsRepo:   stats_repo.NewStatsRepository(gameCfg.RecentWindow()),
		TxManager:   txm,
		Engine:      roulette.NewEngine(w),
		Sequencer: reveal.New(reveal.Config{
			Duration:     gameCfg.RevealDuration(),
			Tick:         gameCfg.RevealTick(),
			MinRotations: gameCfg.MinRotations(),
			MaxRotations: gameCfg.MaxRotations(),
		}),
		Dealer:  dealer.NewCanned(),
		GameCfg: gameCfg,
	})

	srv := httptest.NewServer(NewRouter(RouterDeps{Serv: serv, SecretKey: testSecret, TokenTTL: time.Hour}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		waitCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
		defer stop()
		_ = serv.WaitReveal(waitCtx)
	})

	return &testEnv{srv: srv, serv: serv, wheel: w}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func (e *testEnv) login(t *testing.T, name string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/session", "", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var body sessionDTO.BeginResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (e *testEnv) waitReveal(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.serv.WaitReveal(ctx))
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestSessionEndpoints(t *testing.T) {
	e := newTestEnv(t, "20ms", 1)

	res := e.do(t, http.MethodGet, "/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = e.do(t, http.MethodGet, "/session", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = e.do(t, http.MethodPost, "/session", "", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	token := e.login(t, "alice")

	res = e.do(t, http.MethodGet, "/session", token, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	player := decode[sessionDTO.PlayerResponse](t, res)
	assert.Equal(t, "alice", player.Name)
	assert.True(t, player.Balance.Equal(decimal.NewFromInt(100)))

	res = e.do(t, http.MethodDelete, "/session", token, "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestBeginSessionWithCustomBalance(t *testing.T) {
	e := newTestEnv(t, "20ms", 1)

	res := e.do(t, http.MethodPost, "/session", "", `{"name":"bob","balance":"250.50"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	body := decode[sessionDTO.BeginResponse](t, res)
	assert.True(t, body.Player.Balance.Equal(decimal.RequireFromString("250.5")))

	res = e.do(t, http.MethodPost, "/session", "", `{"name":"carol","balance":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBetHistoryAndStats(t *testing.T) {
	e := newTestEnv(t, "20ms", 17)
	token := e.login(t, "alice")

	res := e.do(t, http.MethodPost, "/roulette/bet", token, `{"kind":"number","pick":"17","amount":50}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	bet := decode[rouletteDTO.BetResponse](t, res)
	assert.Equal(t, "WIN", bet.Outcome)
	assert.Equal(t, 17, bet.Slot)
	assert.Equal(t, "black", bet.Color)
	assert.True(t, bet.Payout.Equal(decimal.NewFromInt(1800)))
	assert.True(t, bet.Balance.Equal(decimal.NewFromInt(1850)))
	assert.False(t, bet.Bankrupt)
	e.waitReveal(t)

	res = e.do(t, http.MethodGet, "/roulette/history?limit=5", token, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	history := decode[rouletteDTO.HistoryResponse](t, res)
	require.Len(t, history.Items, 1)
	assert.Equal(t, "Number 17", history.Items[0].Bet)
	assert.Equal(t, "WIN", history.Items[0].Outcome)

	res = e.do(t, http.MethodGet, "/roulette/stats", token, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	stats := decode[rouletteDTO.StatsResponse](t, res)
	assert.Equal(t, 1, stats.Spins)
	assert.Equal(t, []int{17}, stats.RecentOutcomes)

	res = e.do(t, http.MethodDelete, "/roulette/history", token, "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res = e.do(t, http.MethodGet, "/roulette/history", token, "")
	history = decode[rouletteDTO.HistoryResponse](t, res)
	assert.Empty(t, history.Items)

	res = e.do(t, http.MethodGet, "/roulette/history?limit=abc", token, "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBetErrors(t *testing.T) {
	e := newTestEnv(t, "20ms", 3)
	token := e.login(t, "dave")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown kind", `{"kind":"split","pick":"1","amount":10}`, http.StatusBadRequest},
		{"number out of range", `{"kind":"number","pick":"37","amount":10}`, http.StatusBadRequest},
		{"zero amount", `{"kind":"color","pick":"red","amount":0}`, http.StatusBadRequest},
		{"bad color", `{"kind":"color","pick":"green","amount":10}`, http.StatusBadRequest},
		{"more than balance", `{"kind":"parity","pick":"even","amount":101}`, http.StatusPaymentRequired},
		{"broken json", `{"kind":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.do(t, http.MethodPost, "/roulette/bet", token, tt.body)
			assert.Equal(t, tt.want, res.StatusCode)
		})
	}
	assert.Zero(t, e.wheel.Draws())
}

func TestBetKindIsCaseInsensitive(t *testing.T) {
	e := newTestEnv(t, "20ms", 3)
	token := e.login(t, "fred")

	res := e.do(t, http.MethodPost, "/roulette/bet", token, `{"kind":"Color","pick":"Red","amount":10}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	bet := decode[rouletteDTO.BetResponse](t, res)
	assert.Equal(t, "WIN", bet.Outcome)
	assert.Contains(t, bet.Bet, "Color Red")
	assert.True(t, bet.Balance.Equal(decimal.NewFromInt(110)))
	e.waitReveal(t)
}

func TestBetRejectedDuringReveal(t *testing.T) {
	e := newTestEnv(t, "400ms", 5)
	token := e.login(t, "erin")

	body := `{"kind":"color","pick":"red","amount":10}`
	res := e.do(t, http.MethodPost, "/roulette/bet", token, body)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = e.do(t, http.MethodPost, "/roulette/bet", token, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	e.waitReveal(t)
	res = e.do(t, http.MethodPost, "/roulette/bet", token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRevealWebsocket(t *testing.T) {
	e := newTestEnv(t, "30ms", 17)
	token := e.login(t, "frank")

	wsURL := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/roulette/reveal?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	res := e.do(t, http.MethodPost, "/roulette/bet", token, `{"kind":"color","pick":"black","amount":10}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	bet := decode[rouletteDTO.BetResponse](t, res)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var (
		final   *rouletteDTO.RevealMessage
		comment *rouletteDTO.RevealMessage
	)
	for final == nil || comment == nil {
		var msg rouletteDTO.RevealMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, bet.RoundID, msg.RoundID)

		switch {
		case msg.Type == "frame" && msg.Done:
			final = &msg
		case msg.Type == "frame":
			assert.Nil(t, msg.Slot, "slot must stay hidden until the wheel stops")
		case msg.Type == "comment":
			comment = &msg
		}
	}

	require.NotNil(t, final.Slot)
	assert.Equal(t, 17, *final.Slot)
	assert.NotEmpty(t, comment.Text)
}

func TestDealerAsk(t *testing.T) {
	e := newTestEnv(t, "20ms", 1)
	token := e.login(t, "gina")

	res := e.do(t, http.MethodPost, "/dealer/ask", token, `{"question":"will it be red?"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	answer := decode[dealerDTO.AskResponse](t, res)
	assert.NotEmpty(t, answer.Answer)

	res = e.do(t, http.MethodPost, "/dealer/ask", token, `{"question":""}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeletePlayer(t *testing.T) {
	e := newTestEnv(t, "20ms", 1)
	token := e.login(t, "hank")

	res := e.do(t, http.MethodDelete, "/player", token, "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = e.do(t, http.MethodGet, "/session", token, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
