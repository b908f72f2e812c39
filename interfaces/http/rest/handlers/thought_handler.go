package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"strainbrain/application/commands"
	cmdhandlers "strainbrain/application/commands/handlers"
	"strainbrain/application/queries"
	querybus "strainbrain/application/queries/bus"
	"strainbrain/pkg/common"
	apperrors "strainbrain/pkg/errors"
	"strainbrain/pkg/utils"
)

// ThoughtHandler handles thought-related HTTP requests
type ThoughtHandler struct {
	create   *cmdhandlers.CreateThoughtHandler
	queryBus *querybus.QueryBus
	errs     *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewThoughtHandler creates a new thought handler
func NewThoughtHandler(
	create *cmdhandlers.CreateThoughtHandler,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ThoughtHandler {
	return &ThoughtHandler{
		create:   create,
		queryBus: queryBus,
		errs:     errs,
		logger:   logger,
	}
}

// CreateThoughtRequest represents the request body for creating a thought
type CreateThoughtRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	Connections []string `json:"connections,omitempty" validate:"omitempty,max=50"`
	Source      string   `json:"source,omitempty" validate:"omitempty,max=100"`
	Confidence  *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// CreateThoughtResponse represents the response for creating a thought
type CreateThoughtResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Verified    bool     `json:"verified"`
	Confidence  float64  `json:"confidence"`
	Connections []string `json:"connections,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// CreateThought handles POST /thoughts
func (h *ThoughtHandler) CreateThought(w http.ResponseWriter, r *http.Request) {
	var req CreateThoughtRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}
	source := req.Source
	if source == "" {
		source = "user"
	}

	thought, err := h.create.Handle(r.Context(), commands.CreateThoughtCommand{
		Name:        req.Name,
		Description: req.Description,
		Connections: req.Connections,
		Source:      source,
		Confidence:  confidence,
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	connections := make([]string, 0, len(thought.Connections()))
	for _, id := range thought.Connections() {
		connections = append(connections, id.String())
	}

	common.RespondJSON(w, http.StatusCreated, CreateThoughtResponse{
		ID:          thought.ID().String(),
		Name:        thought.Name(),
		Verified:    thought.Verified(),
		Confidence:  thought.Confidence(),
		Connections: connections,
		CreatedAt:   utils.FormatRFC3339(thought.Created()),
	})
}

// GetThought handles GET /thoughts/{thoughtID}
func (h *ThoughtHandler) GetThought(w http.ResponseWriter, r *http.Request) {
	thoughtID := chi.URLParam(r, "thoughtID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetThoughtQuery{ThoughtID: thoughtID})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListThoughts handles GET /thoughts
func (h *ThoughtHandler) ListThoughts(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListThoughtsQuery{})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	views, ok := result.([]queries.ThoughtView)
	if !ok {
		h.errs.Handle(w, r, apperrors.NewInternalError("unexpected thought list result shape"))
		return
	}

	params := common.ExtractPaginationParams(r)
	lo, hi := params.Bounds(len(views))
	common.RespondWithMeta(w, http.StatusOK, views[lo:hi], &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(params.Page, params.PageSize, len(views)),
	})
}

// Search handles GET /query
func (h *ThoughtHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Query parameter 'q' is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ProcessQueryQuery{Query: q})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
