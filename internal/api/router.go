package api

import (
	"time"

	dealerAPI "roulette_casino/internal/api/dealer"
	"roulette_casino/internal/api/middleware"
	playerAPI "roulette_casino/internal/api/player"
	rouletteAPI "roulette_casino/internal/api/roulette"
	sessionAPI "roulette_casino/internal/api/session"
	"roulette_casino/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterDeps struct {
	Serv      service.RouletteService
	SecretKey []byte
	TokenTTL  time.Duration
}

// NewRouter собирает HTTP API рулетки
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	sessionHandler := sessionAPI.NewHandler(sessionAPI.HandlerDeps{
		Serv:      deps.Serv,
		SecretKey: deps.SecretKey,
		TTL:       deps.TokenTTL,
	})
	rouletteHandler := rouletteAPI.NewHandler(rouletteAPI.HandlerDeps{Serv: deps.Serv})
	dealerHandler := dealerAPI.NewHandler(dealerAPI.HandlerDeps{Serv: deps.Serv})
	playerHandler := playerAPI.NewHandler(playerAPI.HandlerDeps{Serv: deps.Serv})

	r.Post("/session", sessionHandler.Begin)

	// Всё остальное только с токеном сессии
	r.Group(func(rr chi.Router) {
		rr.Use(middleware.Session(deps.SecretKey, deps.Serv))

		rr.Get("/session", sessionHandler.Current)
		rr.Delete("/session", sessionHandler.End)

		rr.Route("/roulette", func(rt chi.Router) {
			rt.Post("/bet", rouletteHandler.Bet)
			rt.Get("/history", rouletteHandler.History)
			rt.Delete("/history", rouletteHandler.ClearHistory)
			rt.Get("/stats", rouletteHandler.Stats)
			rt.Get("/reveal", rouletteHandler.Reveal)
		})

		rr.Post("/dealer/ask", dealerHandler.Ask)
		rr.Delete("/player", playerHandler.Delete)
	})

	return r
}
