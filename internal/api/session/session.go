package session

import (
	"net/http"
	"time"

	dto "roulette_casino/internal/api/dto/session"
	"roulette_casino/internal/api/httperr"
	"roulette_casino/internal/api/middleware"
	"roulette_casino/internal/converter"
	"roulette_casino/internal/model"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"
	"roulette_casino/pkg/req"
	"roulette_casino/pkg/resp"
	"roulette_casino/pkg/token"
)

type HandlerDeps struct {
	Serv      service.RouletteService
	SecretKey []byte
	TTL       time.Duration
}

type Handler struct {
	serv      service.RouletteService
	secretKey []byte
	ttl       time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, secretKey: deps.SecretKey, ttl: deps.TTL}
}

// Begin загружает или создаёт игрока и отдаёт токен сессии (в теле и в cookie)
func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.DecodeValid[dto.BeginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var player *model.PlayerAccount
	if payload.Balance != nil {
		player, err = h.serv.BeginSessionWithBalance(r.Context(), payload.Name, *payload.Balance)
	} else {
		player, err = h.serv.BeginSession(r.Context(), payload.Name)
	}
	if err != nil {
		logger.Warn("begin session %q: %v", payload.Name, err)
		httperr.Write(w, err)
		return
	}

	tok, err := token.GenerateSessionToken(*player, h.secretKey, h.ttl)
	if err != nil {
		logger.Error("sign session token: %v", err)
		resp.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	setSessionCookie(w, tok, h.ttl)

	resp.WriteJSONResponse(w, http.StatusCreated, dto.BeginResponse{
		Token:  tok,
		Player: converter.ToPlayerResponse(*player),
	})
}

// Current текущий игрок и баланс
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	player, err := h.serv.Current()
	if err != nil {
		httperr.Write(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlayerResponse(*player))
}

// End закрывает сессию
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	h.serv.EndSession()
	deleteSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// setSessionCookie устанавливает cookie с токеном сессии
func setSessionCookie(w http.ResponseWriter, tok string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func deleteSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
