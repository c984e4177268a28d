package middleware

import (
	"net/http"
	"time"

	"roulette_casino/pkg/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logging пишет метод, путь, статус и время ответа
func Logging(next http.Handler) http.Handler {
	log := logger.With("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
