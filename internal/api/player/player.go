package player

import (
	"net/http"

	"roulette_casino/internal/api/httperr"
	"roulette_casino/internal/api/middleware"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"
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

// Delete удаляет игрока вместе с историей и закрывает сессию
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.DeleteAccount(r.Context()); err != nil {
		logger.Error("delete account: %v", err)
		httperr.Write(w, err)
		return
	}

	if id, ok := middleware.PlayerID(r.Context()); ok {
		logger.Info("player %d deleted", id)
	}

	http.SetCookie(w, &http.Cookie{Name: middleware.CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}
