package di

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cmdbus "strainbrain/application/commands/bus"
	cmdhandlers "strainbrain/application/commands/handlers"
	"strainbrain/application/ports"
	querybus "strainbrain/application/queries/bus"
	queryhandlers "strainbrain/application/queries/handlers"
	"strainbrain/application/services"
	domaincfg "strainbrain/domain/config"
	domainservices "strainbrain/domain/services"
	"strainbrain/infrastructure/config"
	"strainbrain/infrastructure/llm"
	"strainbrain/infrastructure/loaders"
	"strainbrain/infrastructure/messaging/membus"
	"strainbrain/infrastructure/persistence/memory"
	"strainbrain/pkg/observability"
)

// ProvideLogger builds the zap logger for the configured environment.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}

// ProvideDomainConfig materializes the domain tunables.
func ProvideDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	return cfg.DomainConfig()
}

// ProvideEventBus builds the in-process event bus.
func ProvideEventBus(logger *zap.Logger) ports.EventBus {
	return membus.NewBus(logger)
}

// ProvideEntityGraph builds the in-memory entity graph store.
func ProvideEntityGraph(logger *zap.Logger) ports.EntityGraph {
	return memory.NewEntityGraphStore(logger)
}

// ProvideThoughtStore builds the in-memory thought store.
func ProvideThoughtStore(logger *zap.Logger) ports.ThoughtStore {
	return memory.NewThoughtMemoryStore(logger)
}

// ProvideRoleRegistry builds the role registry and seeds the standard
// troupe.
func ProvideRoleRegistry(eventBus ports.EventBus, logger *zap.Logger) (ports.RoleRegistry, error) {
	registry := memory.NewRoleRegistryStore(eventBus, logger)
	if err := services.SeedTroupe(context.Background(), registry); err != nil {
		return nil, fmt.Errorf("seed role troupe: %w", err)
	}
	return registry, nil
}

// ProvideCompletion builds the reasoning backend, breaker-wrapped. The
// stub backend keeps development usable without an API key.
func ProvideCompletion(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.Completion, error) {
	if cfg.BackendProvider == "stub" || cfg.GeminiAPIKey == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("no reasoning backend configured")
		}
		logger.Warn("no api key, using stub completion backend")
		return llm.NewStubClient(logger), nil
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		return nil, err
	}
	return llm.NewBreakerClient(gemini, logger), nil
}

// ProvideThoughtValidator builds the linguistic gate.
func ProvideThoughtValidator(dcfg *domaincfg.DomainConfig) *domainservices.ThoughtValidator {
	return domainservices.NewThoughtValidator(dcfg.MinThoughtTokens)
}

// ProvideStrainEngine builds the strain engine.
func ProvideStrainEngine(graph ports.EntityGraph, eventBus ports.EventBus, dcfg *domaincfg.DomainConfig, logger *zap.Logger) *services.StrainEngine {
	return services.NewStrainEngine(graph, eventBus, dcfg, logger)
}

// ProvideRelevanceRouter builds the relevance router.
func ProvideRelevanceRouter(thoughts ports.ThoughtStore, roles ports.RoleRegistry, dcfg *domaincfg.DomainConfig, logger *zap.Logger) *services.RelevanceRouter {
	return services.NewRelevanceRouter(thoughts, roles, dcfg, logger)
}

// ProvideScheduler builds the orchestration scheduler.
func ProvideScheduler(
	graph ports.EntityGraph,
	thoughts ports.ThoughtStore,
	roles ports.RoleRegistry,
	backend ports.Completion,
	router *services.RelevanceRouter,
	engine *services.StrainEngine,
	validator *domainservices.ThoughtValidator,
	eventBus ports.EventBus,
	dcfg *domaincfg.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.OrchestrationScheduler {
	return services.NewOrchestrationScheduler(graph, thoughts, roles, backend, router, engine, validator, eventBus, dcfg, metrics, logger)
}

// ProvideMetrics registers the metric set on the default registry and
// subscribes it to the domain event stream.
func ProvideMetrics(eventBus ports.EventBus) *observability.Metrics {
	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	m.CollectEvents(eventBus)
	return m
}

// ProvideBulkLoader builds the startup loader.
func ProvideBulkLoader(graph ports.EntityGraph, thoughts ports.ThoughtStore, logger *zap.Logger) *loaders.BulkLoader {
	return loaders.NewBulkLoader(graph, thoughts, logger)
}

// CommandHandlers groups every command-side handler.
type CommandHandlers struct {
	CreateEntity       *cmdhandlers.CreateEntityHandler
	UpdateEntity       *cmdhandlers.UpdateEntityHandler
	DeleteEntity       *cmdhandlers.DeleteEntityHandler
	CreateRelationship *cmdhandlers.CreateRelationshipHandler
	CreateContext      *cmdhandlers.CreateContextHandler
	AddEntityToContext *cmdhandlers.AddEntityToContextHandler
	CreateThought      *cmdhandlers.CreateThoughtHandler
	SetAttention       *cmdhandlers.SetAttentionHandler
	TransitionRole     *cmdhandlers.TransitionRoleHandler
}

// ProvideCommandHandlers wires the command handlers.
func ProvideCommandHandlers(
	graph ports.EntityGraph,
	thoughts ports.ThoughtStore,
	roles ports.RoleRegistry,
	validator *domainservices.ThoughtValidator,
	engine *services.StrainEngine,
	scheduler *services.OrchestrationScheduler,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CommandHandlers {
	return &CommandHandlers{
		CreateEntity:       cmdhandlers.NewCreateEntityHandler(graph, eventBus, logger),
		UpdateEntity:       cmdhandlers.NewUpdateEntityHandler(graph, logger),
		DeleteEntity:       cmdhandlers.NewDeleteEntityHandler(graph, eventBus, logger),
		CreateRelationship: cmdhandlers.NewCreateRelationshipHandler(graph, engine, eventBus, logger),
		CreateContext:      cmdhandlers.NewCreateContextHandler(graph, logger),
		AddEntityToContext: cmdhandlers.NewAddEntityToContextHandler(graph, eventBus, logger),
		CreateThought:      cmdhandlers.NewCreateThoughtHandler(graph, thoughts, validator, engine, scheduler, eventBus, logger),
		SetAttention:       cmdhandlers.NewSetAttentionHandler(scheduler),
		TransitionRole:     cmdhandlers.NewTransitionRoleHandler(roles, logger),
	}
}

// QueryHandlers groups every query-side handler.
type QueryHandlers struct {
	Entity    *queryhandlers.EntityQueryHandler
	Thought   *queryhandlers.ThoughtQueryHandler
	GraphData *queryhandlers.GraphDataHandler
	Status    *queryhandlers.StatusQueryHandler
}

// ProvideQueryHandlers wires the query handlers.
func ProvideQueryHandlers(
	graph ports.EntityGraph,
	thoughts ports.ThoughtStore,
	roles ports.RoleRegistry,
	router *services.RelevanceRouter,
	scheduler *services.OrchestrationScheduler,
	dcfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *QueryHandlers {
	return &QueryHandlers{
		Entity:    queryhandlers.NewEntityQueryHandler(graph, logger),
		Thought:   queryhandlers.NewThoughtQueryHandler(thoughts, router, logger),
		GraphData: queryhandlers.NewGraphDataHandler(graph, thoughts, logger),
		Status:    queryhandlers.NewStatusQueryHandler(graph, thoughts, roles, scheduler, dcfg, logger),
	}
}

// ProvideCommandBus builds the command bus with logging and metrics.
func ProvideCommandBus(handlers *CommandHandlers, metrics *observability.Metrics, logger *zap.Logger) (*cmdbus.CommandBus, error) {
	b := cmdbus.NewCommandBus(
		cmdbus.LoggingMiddleware(logger),
		cmdbus.MetricsMiddleware(metrics),
	)
	if err := registerCommandHandlers(b, handlers); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideQueryBus builds the query bus with logging and metrics.
func ProvideQueryBus(handlers *QueryHandlers, metrics *observability.Metrics, logger *zap.Logger) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus(
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
	)
	if err := registerQueryHandlers(b, handlers); err != nil {
		return nil, err
	}
	return b, nil
}
