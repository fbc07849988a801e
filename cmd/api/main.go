// Package main starts an HTTP server that parses SQL SELECT queries and
// renders them as visual diagrams. It uses the internal handlers package to
// process incoming requests and return JSON responses.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/queryviz/core/internal/handlers"
)

func newRouter(allowedOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", handlers.HealthHandler)
	r.Post("/parse", handlers.ParseHandler)
	r.Post("/visualize", handlers.VisualizeHandler)

	return r
}

func main() {
	allowedOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on %s", port)
	log.Fatal(http.ListenAndServe(":"+port, newRouter(allowedOrigin)))
}
