package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/blocks", handler.ListBlocks)
		r.Get("/biomes/{x}", handler.GetBiome)

		// Pure generation, independent of the running world
		r.With(RateLimitMiddleware(8)).Get("/preview/chunks/{index}", handler.PreviewChunk)

		r.Route("/world", func(r chi.Router) {
			r.Get("/stats", handler.GetStats)
			r.Put("/camera", handler.SetCamera)
			r.Put("/blocks", handler.SetBlock)
			r.Get("/chunks/{index}", handler.GetWorldChunk)
			r.Post("/chunks/{index}/retry", handler.RetryChunk)
			r.Get("/saved", handler.ListSaved)
		})
	})

	return r
}
