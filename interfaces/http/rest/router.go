package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"strainbrain/application/commands/bus"
	cmdhandlers "strainbrain/application/commands/handlers"
	querybus "strainbrain/application/queries/bus"
	"strainbrain/interfaces/http/rest/handlers"
	"strainbrain/interfaces/http/rest/middleware"
	apperrors "strainbrain/pkg/errors"
)

// Deps carries everything the router needs. Create operations return the
// created aggregate, so their handlers are invoked directly instead of
// going through the command bus.
type Deps struct {
	CommandBus         *bus.CommandBus
	QueryBus           *querybus.QueryBus
	CreateEntity       *cmdhandlers.CreateEntityHandler
	CreateRelationship *cmdhandlers.CreateRelationshipHandler
	CreateContext      *cmdhandlers.CreateContextHandler
	CreateThought      *cmdhandlers.CreateThoughtHandler
	Logger             *zap.Logger
	Websocket          http.Handler
	EnableCORS         bool
	EnableMetrics      bool
	Debug              bool
}

// Router creates and configures the HTTP router
type Router struct {
	deps Deps
}

// NewRouter creates a new router instance
func NewRouter(deps Deps) *Router {
	return &Router{deps: deps}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.deps.Logger))
	router.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 100*time.Millisecond, rt.deps.Logger)))

	if rt.deps.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.deps.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	if rt.deps.Websocket != nil {
		router.Handle("/ws", rt.deps.Websocket)
	}

	errs := apperrors.NewErrorHandler(rt.deps.Logger, rt.deps.Debug)

	router.Route("/api/v1", func(r chi.Router) {
		// Entity endpoints
		r.Route("/entities", func(r chi.Router) {
			entityHandler := handlers.NewEntityHandler(rt.deps.CreateEntity, rt.deps.CommandBus, rt.deps.QueryBus, errs, rt.deps.Logger)
			r.Post("/", entityHandler.CreateEntity)
			r.Get("/", entityHandler.ListEntities)
			r.Get("/{entityID}", entityHandler.GetEntity)
			r.Put("/{entityID}", entityHandler.UpdateEntity)
			r.Delete("/{entityID}", entityHandler.DeleteEntity)
		})

		// Relationship endpoints
		r.Route("/relationships", func(r chi.Router) {
			relationshipHandler := handlers.NewRelationshipHandler(rt.deps.CreateRelationship, errs, rt.deps.Logger)
			r.Post("/", relationshipHandler.CreateRelationship)
		})

		// Context endpoints
		r.Route("/contexts", func(r chi.Router) {
			contextHandler := handlers.NewContextHandler(rt.deps.CreateContext, rt.deps.CommandBus, rt.deps.QueryBus, errs, rt.deps.Logger)
			r.Post("/", contextHandler.CreateContext)
			r.Get("/{contextID}", contextHandler.GetContext)
			r.Post("/{contextID}/entities", contextHandler.AttachEntity)
		})

		// Thought endpoints
		thoughtHandler := handlers.NewThoughtHandler(rt.deps.CreateThought, rt.deps.QueryBus, errs, rt.deps.Logger)
		r.Route("/thoughts", func(r chi.Router) {
			r.Post("/", thoughtHandler.CreateThought)
			r.Get("/", thoughtHandler.ListThoughts)
			r.Get("/{thoughtID}", thoughtHandler.GetThought)
		})

		// Relevance search endpoint
		r.Get("/query", thoughtHandler.Search)

		// Orchestration endpoints
		orchestrationHandler := handlers.NewOrchestrationHandler(rt.deps.CommandBus, rt.deps.QueryBus, errs, rt.deps.Logger)
		r.Get("/status", orchestrationHandler.GetStatus)
		r.Put("/attention", orchestrationHandler.SetAttention)
		r.Route("/roles", func(r chi.Router) {
			r.Get("/", orchestrationHandler.ListRoles)
			r.Put("/{roleID}", orchestrationHandler.TransitionRole)
		})

		// Graph snapshot for visualization
		r.Get("/graph-data", handlers.NewGraphHandler(rt.deps.QueryBus, errs, rt.deps.Logger).GetGraphData)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
