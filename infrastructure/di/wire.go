//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"strainbrain/application/commands/bus"
	"strainbrain/application/ports"
	querybus "strainbrain/application/queries/bus"
	"strainbrain/application/services"
	domaincfg "strainbrain/domain/config"
	"strainbrain/infrastructure/config"
	"strainbrain/infrastructure/loaders"
	"strainbrain/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	DomainConfig    *domaincfg.DomainConfig
	EventBus        ports.EventBus
	EntityGraph     ports.EntityGraph
	ThoughtStore    ports.ThoughtStore
	RoleRegistry    ports.RoleRegistry
	Completion      ports.Completion
	StrainEngine    *services.StrainEngine
	RelevanceRouter *services.RelevanceRouter
	Scheduler       *services.OrchestrationScheduler
	CommandHandlers *CommandHandlers
	QueryHandlers   *QueryHandlers
	CommandBus      *bus.CommandBus
	QueryBus        *querybus.QueryBus
	BulkLoader      *loaders.BulkLoader
	Metrics         *observability.Metrics
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideEventBus,
	ProvideEntityGraph,
	ProvideThoughtStore,
	ProvideRoleRegistry,
	ProvideCompletion,
	ProvideThoughtValidator,
	ProvideStrainEngine,
	ProvideRelevanceRouter,
	ProvideScheduler,
	ProvideMetrics,
	ProvideBulkLoader,
	ProvideCommandHandlers,
	ProvideQueryHandlers,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
