package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"strainbrain/application/commands"
	cmdhandlers "strainbrain/application/commands/handlers"
	"strainbrain/pkg/common"
	apperrors "strainbrain/pkg/errors"
	"strainbrain/pkg/utils"
)

// RelationshipHandler handles relationship-related HTTP requests
type RelationshipHandler struct {
	create *cmdhandlers.CreateRelationshipHandler
	errs   *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(
	create *cmdhandlers.CreateRelationshipHandler,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *RelationshipHandler {
	return &RelationshipHandler{
		create: create,
		errs:   errs,
		logger: logger,
	}
}

// CreateRelationshipRequest represents the request body for creating a relationship
type CreateRelationshipRequest struct {
	FromEntityID     string `json:"from_entity_id" validate:"required"`
	ToEntityID       string `json:"to_entity_id" validate:"required"`
	RelationshipType string `json:"relationship_type" validate:"required,min=1,max=100"`
}

// CreateRelationshipResponse represents the response for creating a relationship
type CreateRelationshipResponse struct {
	ID               string  `json:"id"`
	FromEntityID     string  `json:"from_entity_id"`
	ToEntityID       string  `json:"to_entity_id"`
	RelationshipType string  `json:"relationship_type"`
	Amplitude        float64 `json:"amplitude"`
	CreatedAt        string  `json:"created_at"`
}

// CreateRelationship handles POST /relationships
func (h *RelationshipHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req CreateRelationshipRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rel, err := h.create.Handle(r.Context(), commands.CreateRelationshipCommand{
		FromEntityID:     req.FromEntityID,
		ToEntityID:       req.ToEntityID,
		RelationshipType: req.RelationshipType,
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateRelationshipResponse{
		ID:               rel.ID().String(),
		FromEntityID:     rel.From().String(),
		ToEntityID:       rel.To().String(),
		RelationshipType: rel.Type(),
		Amplitude:        rel.Strain().Amplitude(),
		CreatedAt:        utils.FormatRFC3339(rel.Created()),
	})
}
