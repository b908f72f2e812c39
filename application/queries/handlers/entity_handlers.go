package handlers

import (
	"context"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/application/queries"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	pkgerrors "strainbrain/pkg/errors"
)

// EntityQueryHandler serves entity and context reads.
type EntityQueryHandler struct {
	graph  ports.EntityGraph
	logger *zap.Logger
}

// NewEntityQueryHandler creates the handler.
func NewEntityQueryHandler(graph ports.EntityGraph, logger *zap.Logger) *EntityQueryHandler {
	return &EntityQueryHandler{graph: graph, logger: logger}
}

// HandleGetEntity fetches one entity.
func (h *EntityQueryHandler) HandleGetEntity(ctx context.Context, q queries.GetEntityQuery) (*queries.EntityView, error) {
	id, err := valueobjects.ParseEntityID(q.EntityID)
	if err != nil {
		return nil, err
	}

	entity, ok := h.graph.GetEntity(ctx, id)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("entity " + q.EntityID)
	}
	view := entityView(entity)
	return &view, nil
}

// HandleListEntities lists all entities in creation order.
func (h *EntityQueryHandler) HandleListEntities(ctx context.Context, _ queries.ListEntitiesQuery) ([]queries.EntityView, error) {
	all := h.graph.ListEntities(ctx)
	views := make([]queries.EntityView, 0, len(all))
	for _, entity := range all {
		views = append(views, entityView(entity))
	}
	return views, nil
}

// HandleGetContext fetches one context with its member list.
func (h *EntityQueryHandler) HandleGetContext(ctx context.Context, q queries.GetContextQuery) (*queries.ContextView, error) {
	id, err := valueobjects.ParseContextID(q.ContextID)
	if err != nil {
		return nil, err
	}

	ec, ok := h.graph.GetContext(ctx, id)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("context " + q.ContextID)
	}

	members := ec.EntityIDs()
	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.String())
	}
	return &queries.ContextView{
		ID:          ec.ID().String(),
		Name:        ec.Name(),
		Description: ec.Description(),
		EntityIDs:   ids,
	}, nil
}

func entityView(entity *entities.Entity) queries.EntityView {
	contexts := entity.ContextIDs()
	ctxIDs := make([]string, 0, len(contexts))
	for _, id := range contexts {
		ctxIDs = append(ctxIDs, id.String())
	}

	strain := entity.Strain()
	return queries.EntityView{
		ID:          entity.ID().String(),
		Name:        entity.Name(),
		EntityType:  string(entity.Type()),
		Description: entity.Description(),
		Strain: queries.StrainView{
			Amplitude:      strain.Amplitude(),
			Resistance:     strain.Resistance(),
			Frequency:      strain.Frequency(),
			NodeResistance: strain.NodeResistance(),
			Note:           strain.Note().String(),
			Octave:         strain.Octave(),
			LastAccessed:   strain.LastAccessed(),
			AccessCount:    strain.AccessCount(),
		},
		ContextIDs: ctxIDs,
		Created:    entity.Created(),
		Modified:   entity.Modified(),
	}
}
