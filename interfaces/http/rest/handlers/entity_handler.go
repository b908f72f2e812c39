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

// EntityHandler handles entity-related HTTP requests
type EntityHandler struct {
	create     *cmdhandlers.CreateEntityHandler
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errs       *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(
	create *cmdhandlers.CreateEntityHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *EntityHandler {
	return &EntityHandler{
		create:     create,
		commandBus: commandBus,
		queryBus:   queryBus,
		errs:       errs,
		logger:     logger,
	}
}

// CreateEntityRequest represents the request body for creating an entity
type CreateEntityRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	EntityType  string `json:"entity_type" validate:"required"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateEntityRequest represents the request body for updating an entity
type UpdateEntityRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// CreateEntityResponse represents the response for creating an entity
type CreateEntityResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EntityType string `json:"entity_type"`
	CreatedAt  string `json:"created_at"`
}

// CreateEntity handles POST /entities
func (h *EntityHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req CreateEntityRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entity, err := h.create.Handle(r.Context(), commands.CreateEntityCommand{
		Name:        req.Name,
		EntityType:  req.EntityType,
		Description: req.Description,
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateEntityResponse{
		ID:         entity.ID().String(),
		Name:       entity.Name(),
		EntityType: string(entity.Type()),
		CreatedAt:  utils.FormatRFC3339(entity.Created()),
	})
}

// GetEntity handles GET /entities/{entityID}
func (h *EntityHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetEntityQuery{EntityID: entityID})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListEntities handles GET /entities
func (h *EntityHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListEntitiesQuery{})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	views, ok := result.([]queries.EntityView)
	if !ok {
		h.errs.Handle(w, r, apperrors.NewInternalError("unexpected entity list result shape"))
		return
	}

	params := common.ExtractPaginationParams(r)
	lo, hi := params.Bounds(len(views))
	common.RespondWithMeta(w, http.StatusOK, views[lo:hi], &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(params.Page, params.PageSize, len(views)),
	})
}

// UpdateEntity handles PUT /entities/{entityID}
func (h *EntityHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	var req UpdateEntityRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	cmd := commands.UpdateEntityCommand{
		EntityID:    entityID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": entityID})
}

// DeleteEntity handles DELETE /entities/{entityID}
func (h *EntityHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	if err := h.commandBus.Send(r.Context(), commands.DeleteEntityCommand{EntityID: entityID}); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
