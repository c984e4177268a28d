package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"roulette_casino/internal/model"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/logger"
	"roulette_casino/pkg/resp"
	"roulette_casino/pkg/token"
)

// CookieName cookie с токеном сессии
const CookieName = "session_token"

type ctxKey struct{}

// Session проверяет токен сессии и делает его игрока текущим.
// Токен ищется в Authorization: Bearer, затем в cookie, затем в ?token= (браузерный websocket).
func Session(secretKey []byte, serv service.RouletteService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid session token")
				return
			}
			playerID, err := token.PlayerID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			if _, err := serv.ResumeSession(r.Context(), playerID); err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					resp.WriteError(w, http.StatusUnauthorized, "player no longer exists")
					return
				}
				logger.Error("resume session %d: %v", playerID, err)
				resp.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, playerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerID id игрока, положенный middleware
func PlayerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if t, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(t)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}
