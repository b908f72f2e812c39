package handlers

import (
	"context"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/application/queries"
)

// GraphDataHandler builds the full visualization snapshot.
type GraphDataHandler struct {
	graph    ports.EntityGraph
	thoughts ports.ThoughtStore
	logger   *zap.Logger
}

// NewGraphDataHandler creates the handler.
func NewGraphDataHandler(graph ports.EntityGraph, thoughts ports.ThoughtStore, logger *zap.Logger) *GraphDataHandler {
	return &GraphDataHandler{graph: graph, thoughts: thoughts, logger: logger}
}

// Handle renders the snapshot. Dangling relationships are filtered out so
// the view never references a deleted vertex.
func (h *GraphDataHandler) Handle(ctx context.Context, _ queries.GetGraphDataQuery) (*queries.GetGraphDataResult, error) {
	allEntities := h.graph.ListEntities(ctx)

	nodes := make([]queries.GraphNode, 0, len(allEntities))
	present := make(map[string]bool, len(allEntities))
	var totalStrain float64

	for _, entity := range allEntities {
		strain := entity.Strain()
		totalStrain += strain.Amplitude()
		present[entity.ID().String()] = true
		nodes = append(nodes, queries.GraphNode{
			ID:         entity.ID().String(),
			Name:       entity.Name(),
			EntityType: string(entity.Type()),
			Amplitude:  strain.Amplitude(),
			Resistance: strain.Resistance(),
			Note:       strain.Note().String(),
			Octave:     strain.Octave(),
		})
	}

	var links []queries.GraphLink
	for _, rel := range h.graph.ListRelationships(ctx) {
		if !present[rel.From().String()] || !present[rel.To().String()] {
			continue
		}
		links = append(links, queries.GraphLink{
			ID:               rel.ID().String(),
			Source:           rel.From().String(),
			Target:           rel.To().String(),
			RelationshipType: rel.Type(),
			Amplitude:        rel.Strain().Amplitude(),
		})
	}

	thoughtCount := len(h.thoughts.ListThoughts(ctx))
	return &queries.GetGraphDataResult{
		Nodes: nodes,
		Links: links,
		Stats: queries.GraphStats{
			NodeCount:    len(nodes),
			LinkCount:    len(links),
			ThoughtCount: thoughtCount,
			TotalStrain:  totalStrain,
		},
	}, nil
}
