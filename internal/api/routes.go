package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
		Metrics(),
	)

	// Players
	mux.Handle("GET /api/v1/players", chain(http.HandlerFunc(h.ListPlayers)))
	mux.Handle("POST /api/v1/players", chain(http.HandlerFunc(h.CreatePlayer)))
	mux.Handle("GET /api/v1/players/{id}", chain(http.HandlerFunc(h.GetPlayer)))

	// Matches
	mux.Handle("GET /api/v1/matches", chain(http.HandlerFunc(h.ListMatches)))
	mux.Handle("POST /api/v1/matches", chain(http.HandlerFunc(h.CreateMatch)))
	mux.Handle("GET /api/v1/matches/{id}", chain(http.HandlerFunc(h.GetMatch)))

	// Leaderboard
	mux.Handle("GET /api/v1/leaderboard", chain(http.HandlerFunc(h.Leaderboard)))
}
