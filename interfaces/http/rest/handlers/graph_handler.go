package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"strainbrain/application/queries"
	querybus "strainbrain/application/queries/bus"
	"strainbrain/pkg/common"
	apperrors "strainbrain/pkg/errors"
)

// GraphHandler serves the full graph snapshot for visualization
type GraphHandler struct {
	queryBus *querybus.QueryBus
	errs     *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, errs *apperrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus: queryBus,
		errs:     errs,
		logger:   logger,
	}
}

// GetGraphData handles GET /graph-data
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
