package handlers

import (
	"context"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/application/queries"
	"strainbrain/application/services"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	pkgerrors "strainbrain/pkg/errors"
)

// ThoughtQueryHandler serves thought reads and free-text queries.
type ThoughtQueryHandler struct {
	thoughts ports.ThoughtStore
	router   *services.RelevanceRouter
	logger   *zap.Logger
}

// NewThoughtQueryHandler creates the handler.
func NewThoughtQueryHandler(thoughts ports.ThoughtStore, router *services.RelevanceRouter, logger *zap.Logger) *ThoughtQueryHandler {
	return &ThoughtQueryHandler{thoughts: thoughts, router: router, logger: logger}
}

// HandleGetThought fetches one thought.
func (h *ThoughtQueryHandler) HandleGetThought(ctx context.Context, q queries.GetThoughtQuery) (*queries.ThoughtView, error) {
	id, err := valueobjects.ParseThoughtID(q.ThoughtID)
	if err != nil {
		return nil, err
	}

	thought, ok := h.thoughts.GetThought(ctx, id)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("thought " + q.ThoughtID)
	}
	view := thoughtView(thought)
	return &view, nil
}

// HandleListThoughts lists all thoughts in creation order.
func (h *ThoughtQueryHandler) HandleListThoughts(ctx context.Context, _ queries.ListThoughtsQuery) ([]queries.ThoughtView, error) {
	all := h.thoughts.ListThoughts(ctx)
	views := make([]queries.ThoughtView, 0, len(all))
	for _, thought := range all {
		views = append(views, thoughtView(thought))
	}
	return views, nil
}

// HandleProcessQuery runs the relevance scoring for a free-text query and
// also names the roles that would claim the text.
func (h *ThoughtQueryHandler) HandleProcessQuery(ctx context.Context, q queries.ProcessQueryQuery) (*queries.ProcessQueryResult, error) {
	scored := h.router.ProcessQuery(ctx, q.Query)

	matches := make([]queries.ThoughtMatch, 0, len(scored))
	for _, s := range scored {
		conns := s.Thought.Connections()
		ids := make([]string, 0, len(conns))
		for _, id := range conns {
			ids = append(ids, id.String())
		}
		matches = append(matches, queries.ThoughtMatch{
			ID:          s.Thought.ID().String(),
			Name:        s.Thought.Name(),
			Description: s.Thought.Description(),
			Verified:    s.Thought.Verified(),
			Confidence:  s.Thought.Confidence(),
			Score:       s.Score,
			Connections: ids,
		})
	}

	var roleIDs []string
	for _, role := range h.router.RelevantRoles(ctx, q.Query) {
		roleIDs = append(roleIDs, role.ID())
	}

	h.logger.Debug("query processed",
		zap.String("query", q.Query),
		zap.Int("matches", len(matches)),
	)
	return &queries.ProcessQueryResult{
		Query:    q.Query,
		Thoughts: matches,
		Roles:    roleIDs,
	}, nil
}

func thoughtView(thought *entities.Thought) queries.ThoughtView {
	conns := thought.Connections()
	ids := make([]string, 0, len(conns))
	for _, id := range conns {
		ids = append(ids, id.String())
	}

	view := queries.ThoughtView{
		ID:                 thought.ID().String(),
		Name:               thought.Name(),
		Description:        thought.Description(),
		Connections:        ids,
		Verified:           thought.Verified(),
		VerificationSource: thought.VerificationSource(),
		Confidence:         thought.Confidence(),
	}
	if !thought.Origin().IsZero() {
		view.Origin = thought.Origin().String()
	}
	return view
}
