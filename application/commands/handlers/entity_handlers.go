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
	pkgerrors "strainbrain/pkg/errors"
)

// CreateEntityHandler handles entity creation.
type CreateEntityHandler struct {
	graph    ports.EntityGraph
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewCreateEntityHandler creates the handler.
func NewCreateEntityHandler(graph ports.EntityGraph, eventBus ports.EventBus, logger *zap.Logger) *CreateEntityHandler {
	return &CreateEntityHandler{graph: graph, eventBus: eventBus, logger: logger}
}

// Handle creates the entity and publishes its domain events.
func (h *CreateEntityHandler) Handle(ctx context.Context, cmd commands.CreateEntityCommand) (*entities.Entity, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entity, err := h.graph.CreateEntity(ctx, cmd.Name, entities.EntityType(cmd.EntityType), cmd.Description)
	if err != nil {
		return nil, err
	}

	h.publish(ctx, entity)
	h.logger.Info("entity created",
		zap.String("id", entity.ID().String()),
		zap.String("name", entity.Name()),
	)
	return entity, nil
}

func (h *CreateEntityHandler) publish(ctx context.Context, entity *entities.Entity) {
	pending := entity.GetUncommittedEvents()
	if len(pending) > 0 {
		h.eventBus.Publish(ctx, pending...)
		entity.MarkEventsAsCommitted()
	}
}

// UpdateEntityHandler handles renames and description changes.
type UpdateEntityHandler struct {
	graph  ports.EntityGraph
	logger *zap.Logger
}

// NewUpdateEntityHandler creates the handler.
func NewUpdateEntityHandler(graph ports.EntityGraph, logger *zap.Logger) *UpdateEntityHandler {
	return &UpdateEntityHandler{graph: graph, logger: logger}
}

// Handle applies the update to the stored entity.
func (h *UpdateEntityHandler) Handle(ctx context.Context, cmd commands.UpdateEntityCommand) error {
	id, err := valueobjects.ParseEntityID(cmd.EntityID)
	if err != nil {
		return err
	}

	entity, ok := h.graph.GetEntity(ctx, id)
	if !ok {
		return pkgerrors.NewNotFoundError("entity " + cmd.EntityID)
	}
	if err := entity.Rename(cmd.Name, cmd.Description); err != nil {
		return err
	}
	if !h.graph.UpdateEntity(ctx, entity) {
		return pkgerrors.NewNotFoundError("entity " + cmd.EntityID)
	}

	h.logger.Debug("entity updated", zap.String("id", cmd.EntityID))
	return nil
}

// DeleteEntityHandler handles entity removal.
type DeleteEntityHandler struct {
	graph    ports.EntityGraph
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewDeleteEntityHandler creates the handler.
func NewDeleteEntityHandler(graph ports.EntityGraph, eventBus ports.EventBus, logger *zap.Logger) *DeleteEntityHandler {
	return &DeleteEntityHandler{graph: graph, eventBus: eventBus, logger: logger}
}

// Handle deletes the entity. Relationships that referenced it stay in the
// store; traversal skips them.
func (h *DeleteEntityHandler) Handle(ctx context.Context, cmd commands.DeleteEntityCommand) error {
	id, err := valueobjects.ParseEntityID(cmd.EntityID)
	if err != nil {
		return err
	}

	if !h.graph.DeleteEntity(ctx, id) {
		return pkgerrors.NewNotFoundError("entity " + cmd.EntityID)
	}

	h.eventBus.Publish(ctx, events.NewEntityDeleted(id, time.Now()))
	h.logger.Info("entity deleted", zap.String("id", cmd.EntityID))
	return nil
}
