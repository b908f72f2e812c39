package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"strainbrain/application/commands"
	"strainbrain/application/commands/bus"
	"strainbrain/application/queries"
	querybus "strainbrain/application/queries/bus"
	"strainbrain/pkg/common"
	apperrors "strainbrain/pkg/errors"
	"strainbrain/pkg/utils"
)

// OrchestrationHandler exposes the attention state, the role troupe and
// the strain summary over HTTP.
type OrchestrationHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errs       *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewOrchestrationHandler creates a new orchestration handler
func NewOrchestrationHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *OrchestrationHandler {
	return &OrchestrationHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errs:       errs,
		logger:     logger,
	}
}

// SetAttentionRequest represents the request body for setting attention
type SetAttentionRequest struct {
	State string `json:"state" validate:"required,oneof=wake dream sleep"`
}

// TransitionRoleRequest represents the request body for a role transition
type TransitionRoleRequest struct {
	State string `json:"state" validate:"required,oneof=inactive available active"`
}

// GetStatus handles GET /status
func (h *OrchestrationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.StrainStatusQuery{})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// SetAttention handles PUT /attention
func (h *OrchestrationHandler) SetAttention(w http.ResponseWriter, r *http.Request) {
	var req SetAttentionRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.commandBus.Send(r.Context(), commands.SetAttentionCommand{State: req.State}); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"attention": req.State})
}

// ListRoles handles GET /roles
func (h *OrchestrationHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.RolesStatusQuery{})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// TransitionRole handles PUT /roles/{roleID}
func (h *OrchestrationHandler) TransitionRole(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "roleID")

	var req TransitionRoleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	cmd := commands.TransitionRoleCommand{
		RoleID: roleID,
		State:  req.State,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"role_id": roleID,
		"state":   req.State,
	})
}
