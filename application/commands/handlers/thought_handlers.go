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
	domainservices "strainbrain/domain/services"
	pkgerrors "strainbrain/pkg/errors"
)

// CreateThoughtHandler handles verified thought assertion: linguistic
// gating, storage, strain propagation from every referenced entity, and
// one scheduler turn over the new thought.
type CreateThoughtHandler struct {
	graph     ports.EntityGraph
	thoughts  ports.ThoughtStore
	validator *domainservices.ThoughtValidator
	engine    *services.StrainEngine
	scheduler *services.OrchestrationScheduler
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewCreateThoughtHandler creates the handler.
func NewCreateThoughtHandler(
	graph ports.EntityGraph,
	thoughts ports.ThoughtStore,
	validator *domainservices.ThoughtValidator,
	engine *services.StrainEngine,
	scheduler *services.OrchestrationScheduler,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CreateThoughtHandler {
	return &CreateThoughtHandler{
		graph:     graph,
		thoughts:  thoughts,
		validator: validator,
		engine:    engine,
		scheduler: scheduler,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle asserts the thought and kicks off its scheduler turn.
func (h *CreateThoughtHandler) Handle(ctx context.Context, cmd commands.CreateThoughtCommand) (*entities.Thought, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if verdict := h.validator.Validate(cmd.Name); !verdict.IsValid {
		appErr := pkgerrors.NewValidationError(verdict.Reason)
		appErr.Details = map[string]interface{}{"suggestions": verdict.Suggestions}
		return nil, appErr
	}

	connections := make([]valueobjects.EntityID, 0, len(cmd.Connections))
	names := make([]string, 0, len(cmd.Connections))
	for _, raw := range cmd.Connections {
		id, err := valueobjects.ParseEntityID(raw)
		if err != nil {
			return nil, err
		}
		entity, ok := h.graph.GetEntity(ctx, id)
		if !ok {
			return nil, pkgerrors.NewNotFoundError("entity " + raw)
		}
		connections = append(connections, id)
		names = append(names, entity.Name())
	}

	// The connection sequence must stand on its own linguistically, the
	// same way the thought text must.
	if verdict := h.validator.ValidateConnections(names); !verdict.IsValid {
		appErr := pkgerrors.NewValidationError(verdict.Reason)
		appErr.Details = map[string]interface{}{"suggestions": verdict.Suggestions}
		return nil, appErr
	}

	thought, err := h.thoughts.CreateThought(ctx, cmd.Name, cmd.Description, connections, true, cmd.Source, cmd.Confidence)
	if err != nil {
		return nil, err
	}

	h.eventBus.Publish(ctx, events.NewThoughtVerified(thought.ID(), thought.Name(), connections, time.Now()))

	for _, entityID := range connections {
		h.engine.PropagateStrain(ctx, entityID, 0)
	}

	if _, err := h.scheduler.ProcessThought(ctx, thought.ID()); err != nil {
		// The thought is already stored; a degraded turn is not fatal.
		h.logger.Warn("scheduler turn failed", zap.String("thought", thought.ID().String()), zap.Error(err))
	}

	h.logger.Info("thought created",
		zap.String("id", thought.ID().String()),
		zap.Int("connections", len(connections)),
	)
	return thought, nil
}

// SetAttentionHandler moves the scheduler attention state.
type SetAttentionHandler struct {
	scheduler *services.OrchestrationScheduler
}

// NewSetAttentionHandler creates the handler.
func NewSetAttentionHandler(scheduler *services.OrchestrationScheduler) *SetAttentionHandler {
	return &SetAttentionHandler{scheduler: scheduler}
}

// Handle applies the attention transition.
func (h *SetAttentionHandler) Handle(ctx context.Context, cmd commands.SetAttentionCommand) error {
	return h.scheduler.SetAttention(ctx, services.AttentionState(cmd.State))
}

// TransitionRoleHandler moves a role through its state machine.
type TransitionRoleHandler struct {
	roles  ports.RoleRegistry
	logger *zap.Logger
}

// NewTransitionRoleHandler creates the handler.
func NewTransitionRoleHandler(roles ports.RoleRegistry, logger *zap.Logger) *TransitionRoleHandler {
	return &TransitionRoleHandler{roles: roles, logger: logger}
}

// Handle applies the transition. Illegal moves surface as validation
// errors; the coordinator pin surfaces as a logged no-op.
func (h *TransitionRoleHandler) Handle(ctx context.Context, cmd commands.TransitionRoleCommand) error {
	changed, err := h.roles.Transition(ctx, cmd.RoleID, entities.RoleState(cmd.State))
	if err != nil {
		return err
	}
	if !changed {
		h.logger.Debug("role transition was a no-op",
			zap.String("role", cmd.RoleID),
			zap.String("target", cmd.State),
		)
	}
	return nil
}
