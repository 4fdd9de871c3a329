package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-estate-assistant/internal/api/chat"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/property"
)

// Config carries the handlers the router wires up.
type Config struct {
	ChatHandler     *chat.Handler
	PropertyHandler *property.Handler
}

// SetupRouter builds the application router. Server-wide middleware
// (request ID, logging, recoverer) is applied in main before mounting.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	// The chat frontend is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", cfg.ChatHandler.HandleChatMessage)
		r.Post("/properties", cfg.PropertyHandler.HandlePropertySearch)
	})

	return r
}
