package roulette

import (
	"errors"
	"net/http"
	"strconv"

	dto "roulette_casino/internal/api/dto/roulette"
	"roulette_casino/internal/api/httperr"
	"roulette_casino/internal/converter"
	"roulette_casino/internal/model"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"
	"roulette_casino/pkg/req"
	"roulette_casino/pkg/resp"
)

type HandlerDeps struct {
	Serv service.RouletteService
}

type Handler struct {
	serv service.RouletteService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Bet принимает ставку и сразу отдаёт итог раунда. Анимация идёт отдельно через /roulette/reveal.
func (h *Handler) Bet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.DecodeValid[dto.BetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := converter.ToBet(payload)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	rec, err := h.serv.PlaceBet(r.Context(), bet)
	switch {
	case err == nil:
		resp.WriteJSONResponse(w, http.StatusOK, converter.ToBetResponse(*rec))
	case rec != nil && errors.Is(err, model.ErrPersistence):
		// Раунд сыгран, но не сохранён: отдаём итог вместе с ошибкой
		logger.Error("bet %s: %v", rec.RoundID, err)
		response := converter.ToBetResponse(*rec)
		response.PersistenceError = "round was played but could not be saved"
		resp.WriteJSONResponse(w, http.StatusInternalServerError, response)
	default:
		httperr.Write(w, err)
	}
}

// History последние раунды игрока, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			resp.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := h.serv.History(r.Context(), limit)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(records))
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.ClearHistory(r.Context()); err != nil {
		httperr.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.serv.Stats()
	if err != nil {
		httperr.Write(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats))
}
