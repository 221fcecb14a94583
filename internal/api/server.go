// Package api provides the HTTP API server and handlers for the cookery
// server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cookeryapp/cookery-server/internal/service"
	"github.com/cookeryapp/cookery-server/internal/store/sqlite"
)

// Services groups all application services needed by the API server.
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Recipe   *service.RecipeService
	Taxonomy *service.TaxonomyService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *sqlite.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *sqlite.Store, services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("Cookery API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:    store,
		services: services,
		router:   router,
		api:      humaAPI,
		logger:   logger,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerRecipeRoutes()
	s.registerTaxonomyRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
