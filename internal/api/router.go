package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dropforge/dropforge/internal/api/handlers"
	"github.com/dropforge/dropforge/internal/api/middleware"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps *handlers.AirdropDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogging)
	r.Use(middleware.CORS(nil))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(deps.Config, Version))

		r.Post("/recipients/parse", handlers.ParseRecipients())

		r.Get("/token/native", handlers.GetNativeToken(deps.Client))
		r.Get("/token/{address}", handlers.GetToken(deps.Client, deps.Contracts))

		r.Post("/airdrop/preview", handlers.PreviewAirdrop(deps))
		r.Post("/airdrop/sufficiency", handlers.CheckSufficiency(deps))

		r.Get("/drops", handlers.ListDrops(deps.DB))
		r.Post("/drops/{id}/status", handlers.UpdateDropStatus(deps.DB, deps.Config.ChainID))
	})

	slog.Info("router initialized",
		"middleware", []string{"requestLogging", "cors"},
	)

	return r
}
