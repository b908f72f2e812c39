package handlers

import (
	"context"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/application/queries"
	"strainbrain/application/services"
	"strainbrain/domain/config"
)

// StatusQueryHandler serves the role and strain status surfaces.
type StatusQueryHandler struct {
	graph     ports.EntityGraph
	thoughts  ports.ThoughtStore
	roles     ports.RoleRegistry
	scheduler *services.OrchestrationScheduler
	cfg       *config.DomainConfig
	logger    *zap.Logger
}

// NewStatusQueryHandler creates the handler.
func NewStatusQueryHandler(
	graph ports.EntityGraph,
	thoughts ports.ThoughtStore,
	roles ports.RoleRegistry,
	scheduler *services.OrchestrationScheduler,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *StatusQueryHandler {
	return &StatusQueryHandler{graph: graph, thoughts: thoughts, roles: roles, scheduler: scheduler, cfg: cfg, logger: logger}
}

// HandleRolesStatus reports the whole troupe.
func (h *StatusQueryHandler) HandleRolesStatus(ctx context.Context, _ queries.RolesStatusQuery) ([]queries.RoleView, error) {
	all := h.roles.List(ctx)
	views := make([]queries.RoleView, 0, len(all))
	for _, role := range all {
		views = append(views, queries.RoleView{
			ID:        role.ID(),
			Name:      role.Name(),
			Kind:      string(role.Kind()),
			State:     string(role.State()),
			Strain:    role.Strain(),
			MaxStrain: role.MaxStrain(),
			Keywords:  role.DomainKeywords(),
		})
	}
	return views, nil
}

// HandleStrainStatus aggregates amplitude over the graph and reports the
// scheduler's attention state alongside.
func (h *StatusQueryHandler) HandleStrainStatus(ctx context.Context, _ queries.StrainStatusQuery) (*queries.StrainStatusResult, error) {
	result := &queries.StrainStatusResult{
		Attention: string(h.scheduler.Attention()),
	}

	for _, entity := range h.graph.ListEntities(ctx) {
		result.EntityCount++
		amplitude := entity.Strain().Amplitude()
		result.TotalAmplitude += amplitude
		if amplitude > result.MaxAmplitude {
			result.MaxAmplitude = amplitude
		}
		if amplitude > h.cfg.DissonanceThreshold {
			result.Dissonant++
		}
	}
	result.RelationshipLoad = len(h.graph.ListRelationships(ctx))
	result.ThoughtCount = len(h.thoughts.ListThoughts(ctx))
	return result, nil
}
