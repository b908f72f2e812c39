package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"strainbrain/application/commands"
	"strainbrain/application/ports"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
)

// CreateContextHandler handles context creation.
type CreateContextHandler struct {
	graph  ports.EntityGraph
	logger *zap.Logger
}

// NewCreateContextHandler creates the handler.
func NewCreateContextHandler(graph ports.EntityGraph, logger *zap.Logger) *CreateContextHandler {
	return &CreateContextHandler{graph: graph, logger: logger}
}

// Handle creates the context.
func (h *CreateContextHandler) Handle(ctx context.Context, cmd commands.CreateContextCommand) (*entities.EntityContext, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := h.graph.CreateContext(ctx, cmd.Name, cmd.Description)
	if err != nil {
		return nil, err
	}
	h.logger.Info("context created", zap.String("id", created.ID().String()))
	return created, nil
}

// AddEntityToContextHandler handles context membership.
type AddEntityToContextHandler struct {
	graph    ports.EntityGraph
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewAddEntityToContextHandler creates the handler.
func NewAddEntityToContextHandler(graph ports.EntityGraph, eventBus ports.EventBus, logger *zap.Logger) *AddEntityToContextHandler {
	return &AddEntityToContextHandler{graph: graph, eventBus: eventBus, logger: logger}
}

// Handle attaches the entity. Repeats are no-ops and publish nothing; a
// first attachment bumps the entity's strain frequency.
func (h *AddEntityToContextHandler) Handle(ctx context.Context, cmd commands.AddEntityToContextCommand) error {
	entityID, err := valueobjects.ParseEntityID(cmd.EntityID)
	if err != nil {
		return err
	}
	contextID, err := valueobjects.ParseContextID(cmd.ContextID)
	if err != nil {
		return err
	}

	attached, err := h.graph.AddEntityToContext(ctx, entityID, contextID)
	if err != nil {
		return err
	}
	if !attached {
		h.logger.Debug("entity already in context",
			zap.String("entity", cmd.EntityID),
			zap.String("context", cmd.ContextID),
		)
		return nil
	}

	frequency := 0
	if entity, ok := h.graph.GetEntity(ctx, entityID); ok {
		frequency = entity.Strain().Frequency()
	}
	h.eventBus.Publish(ctx, events.NewContextAttached(contextID, entityID, frequency, time.Now()))
	return nil
}
