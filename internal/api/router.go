package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/trackfolio/trackfolio-be/internal/api/handlers"
	"github.com/trackfolio/trackfolio-be/internal/auth"
	"github.com/trackfolio/trackfolio-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.TokenService, authService services.AuthServiceProvider, assetService services.AssetServiceProvider, eventService services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	assetHandler := handlers.NewAssetHandler(assetService)
	eventHandler := handlers.NewEventHandler(eventService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(tokens.Middleware()).Get("/me", authHandler.GetMe)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", assetHandler.GetAll)
				r.Post("/", assetHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", assetHandler.Get)
					r.Put("/", assetHandler.Update)
					r.Delete("/", assetHandler.Delete)
				})
			})

			r.Get("/events", eventHandler.GetRecent)
		})
	})

	return r
}
