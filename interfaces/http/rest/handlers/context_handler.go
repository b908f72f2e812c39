package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"strainbrain/application/commands"
	"strainbrain/application/commands/bus"
	cmdhandlers "strainbrain/application/commands/handlers"
	"strainbrain/application/queries"
	querybus "strainbrain/application/queries/bus"
	"strainbrain/pkg/common"
	apperrors "strainbrain/pkg/errors"
	"strainbrain/pkg/utils"
)

// ContextHandler handles context-related HTTP requests
type ContextHandler struct {
	create     *cmdhandlers.CreateContextHandler
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errs       *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewContextHandler creates a new context handler
func NewContextHandler(
	create *cmdhandlers.CreateContextHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ContextHandler {
	return &ContextHandler{
		create:     create,
		commandBus: commandBus,
		queryBus:   queryBus,
		errs:       errs,
		logger:     logger,
	}
}

// CreateContextRequest represents the request body for creating a context
type CreateContextRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// AttachEntityRequest represents the request body for attaching an entity
type AttachEntityRequest struct {
	EntityID string `json:"entity_id" validate:"required"`
}

// CreateContextResponse represents the response for creating a context
type CreateContextResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// CreateContext handles POST /contexts
func (h *ContextHandler) CreateContext(w http.ResponseWriter, r *http.Request) {
	var req CreateContextRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	created, err := h.create.Handle(r.Context(), commands.CreateContextCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateContextResponse{
		ID:        created.ID().String(),
		Name:      created.Name(),
		CreatedAt: utils.FormatRFC3339(created.Created()),
	})
}

// GetContext handles GET /contexts/{contextID}
func (h *ContextHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetContextQuery{ContextID: contextID})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// AttachEntity handles POST /contexts/{contextID}/entities
func (h *ContextHandler) AttachEntity(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextID")

	var req AttachEntityRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	cmd := commands.AddEntityToContextCommand{
		EntityID:  req.EntityID,
		ContextID: contextID,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"context_id": contextID,
		"entity_id":  req.EntityID,
	})
}
