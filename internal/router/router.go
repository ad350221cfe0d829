package router

import (
	"net/http"

	"storefront-analytics/internal/handler"
	"storefront-analytics/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(analyticsHandler *handler.AnalyticsHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Applied in order: RequestID -> Recovery -> Logging -> CORS -> StripSlashes -> GetHead
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         86400,
	}))
	r.Use(chimw.StripSlashes)
	r.Use(chimw.GetHead)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint (does not touch the database)
	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users-last-30-days", analyticsHandler.UsersLast30Days)
		r.Get("/top-products", analyticsHandler.TopProducts)
		r.Get("/revenue-per-category", analyticsHandler.RevenuePerCategory)
		r.Get("/remaining-stock/{"+handler.ProductIDParam+"}", analyticsHandler.RemainingStock)
	})

	return r
}
