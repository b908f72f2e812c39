package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"strainbrain/application/commands"
	"strainbrain/application/ports"
	"strainbrain/application/services"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
)

// CreateRelationshipHandler handles edge creation, including the gravity
// initialization and the follow-up strain propagation from both ends.
type CreateRelationshipHandler struct {
	graph    ports.EntityGraph
	engine   *services.StrainEngine
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewCreateRelationshipHandler creates the handler.
func NewCreateRelationshipHandler(graph ports.EntityGraph, engine *services.StrainEngine, eventBus ports.EventBus, logger *zap.Logger) *CreateRelationshipHandler {
	return &CreateRelationshipHandler{graph: graph, engine: engine, eventBus: eventBus, logger: logger}
}

// Handle creates the relationship and settles the surrounding strain.
func (h *CreateRelationshipHandler) Handle(ctx context.Context, cmd commands.CreateRelationshipCommand) (*entities.Relationship, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	from, err := valueobjects.ParseEntityID(cmd.FromEntityID)
	if err != nil {
		return nil, err
	}
	to, err := valueobjects.ParseEntityID(cmd.ToEntityID)
	if err != nil {
		return nil, err
	}

	rel, err := h.graph.CreateRelationship(ctx, from, to, cmd.RelationshipType)
	if err != nil {
		return nil, err
	}

	amplitude := h.engine.InitializeRelationship(ctx, rel)
	h.engine.PropagateStrain(ctx, from, 0)
	h.engine.PropagateStrain(ctx, to, 0)

	h.eventBus.Publish(ctx, events.NewRelationshipCreated(
		rel.ID().String(), from, to, cmd.RelationshipType, amplitude, time.Now(),
	))
	h.logger.Info("relationship created",
		zap.String("id", rel.ID().String()),
		zap.Float64("amplitude", amplitude),
	)
	return rel, nil
}
