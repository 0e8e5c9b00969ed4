package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"sarychdb/application/crud"
	"sarychdb/infrastructure/config"
	"sarychdb/infrastructure/users"
	"sarychdb/interfaces/http/rest/handlers"
	"sarychdb/interfaces/http/rest/middleware"
	apperrors "sarychdb/pkg/errors"
)

// Router builds SarychDB's HTTP surface: /users, /databases, /sarych,
// plus health/readiness (spec §6).
type Router struct {
	registry *users.Registry
	engine   *crud.Engine
	cfg      *config.Config
	logger   *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(registry *users.Registry, engine *crud.Engine, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{registry: registry, engine: engine, cfg: cfg, logger: logger}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	errHandler := apperrors.NewHandler(rt.logger)

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errHandler.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "username", "password", "queryType", "idUpdate", "page", "limit", "sortBy", "sortOrder", "filters"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	userHandler := handlers.NewUserHandler(rt.registry, errHandler, rt.logger)
	router.Post("/users", userHandler.CreateUser)

	dbHandler := handlers.NewDatabaseHandler(rt.registry, errHandler, rt.logger)
	router.Post("/databases", dbHandler.CreateDatabase)
	router.Get("/databases", dbHandler.ListDatabases)

	sarychHandler := handlers.NewSarychHandler(rt.registry, rt.engine, errHandler, rt.logger)
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.registry, errHandler))
		r.HandleFunc("/sarych", sarychHandler.Serve)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
