package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/countryquiz/internal/countryquiz"
	"github.com/playperu/countryquiz/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, catalog *countryquiz.Catalog, sessions *Sessions, broker *Broker, checks map[string]health.Checker) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Country Quiz API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, checks).Routes())

	r.Get("/api/metrics", handleListMetrics())
	r.Get("/api/countries", handleListCountries(catalog))

	// {player} is resolved to a session by playerMiddleware.
	r.Route("/api/players/{player}", func(r chi.Router) {
		r.Use(playerMiddleware(logger, sessions))
		r.Get("/state", handleGetState())
		r.Post("/questions", handleNewQuestion(logger))
		r.Post("/answers", handleAnswer(logger, sessions, broker))
		r.Post("/reset", handleReset(logger, sessions, broker))
		r.Put("/metric", handleSelectMetric(logger, sessions, broker))
		r.Get("/events", handleEvents(broker))
	})
}
