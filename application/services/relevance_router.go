package services

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/config"
	"strainbrain/domain/core/entities"
)

// ScoredThought pairs a stored thought with its relevance to a query.
type ScoredThought struct {
	Thought *entities.Thought
	Score   float64
}

// RelevanceRouter answers two questions: which roles care about a piece
// of content, and which stored thoughts answer a free-text query. Both
// are lexical-overlap heuristics, not semantic search.
type RelevanceRouter struct {
	thoughts ports.ThoughtStore
	roles    ports.RoleRegistry
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewRelevanceRouter creates a router over the given stores.
func NewRelevanceRouter(thoughts ports.ThoughtStore, roles ports.RoleRegistry, cfg *config.DomainConfig, logger *zap.Logger) *RelevanceRouter {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &RelevanceRouter{thoughts: thoughts, roles: roles, cfg: cfg, logger: logger}
}

// RelevantRoles returns every registered role whose domain keywords match
// the content. The coordinator matches unconditionally. Worker roles are
// capped at MaxWorkerRoles per call, taken in registration order.
func (r *RelevanceRouter) RelevantRoles(ctx context.Context, content string) []*entities.RoleDescriptor {
	var matched []*entities.RoleDescriptor
	workers := 0

	for _, role := range r.roles.List(ctx) {
		if !role.DomainMatch(content) {
			continue
		}
		if role.Kind() == entities.KindWorker {
			if workers >= r.cfg.MaxWorkerRoles {
				continue
			}
			workers++
		}
		matched = append(matched, role)
	}

	r.logger.Debug("roles matched",
		zap.Int("count", len(matched)),
		zap.Int("workers", workers),
	)
	return matched
}

// ProcessQuery scores every stored thought against the query and returns
// the survivors sorted by descending score. The score tiers are mutually
// exclusive, first match wins:
//
//	exact name match            1.0
//	query contains name         0.8
//	name contains query         0.7
//	description contains query  0.5
//
// Verified thoughts are boosted, the result is weighted by the thought's
// own confidence, clamped to [0,1], and anything under the relevance
// floor is dropped. Ties keep store order.
func (r *RelevanceRouter) ProcessQuery(ctx context.Context, query string) []ScoredThought {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var results []ScoredThought
	for _, thought := range r.thoughts.ListThoughts(ctx) {
		score := r.scoreThought(thought, needle)
		if score < r.cfg.LowRelevanceFloor {
			continue
		}
		results = append(results, ScoredThought{Thought: thought, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (r *RelevanceRouter) scoreThought(thought *entities.Thought, needle string) float64 {
	name := strings.ToLower(thought.Name())
	description := strings.ToLower(thought.Description())

	var score float64
	switch {
	case name == needle:
		score = 1.0
	case name != "" && strings.Contains(needle, name):
		score = 0.8
	case strings.Contains(name, needle):
		score = 0.7
	case description != "" && strings.Contains(description, needle):
		score = 0.5
	default:
		return 0
	}

	if thought.Verified() {
		score *= r.cfg.VerifiedBoost
	}
	score *= thought.Confidence()

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}
