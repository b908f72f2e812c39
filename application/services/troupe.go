package services

import (
	"context"

	"strainbrain/application/ports"
	"strainbrain/domain/core/entities"
)

// roleSeed describes one member of the standard troupe.
type roleSeed struct {
	id           string
	name         string
	kind         entities.RoleKind
	keywords     []string
	instructions string
}

// standardTroupe is the default role population. The stage manager is the
// coordinator and matches every piece of content; the narrator fronts
// user turns; the workers each own a keyword domain.
var standardTroupe = []roleSeed{
	{
		id:   "stage_manager",
		name: "Stage Manager",
		kind: entities.KindCoordinator,
		instructions: "You coordinate the other roles. Synthesize their contributions " +
			"into a coherent whole and resolve conflicts between them.",
	},
	{
		id:   "narrator",
		name: "Narrator",
		kind: entities.KindInterface,
		instructions: "You speak for the system. Turn the current graph state and the " +
			"other roles' contributions into a direct reply to the user.",
	},
	{
		id:       "engineer",
		name:     "Engineer",
		kind:     entities.KindWorker,
		keywords: []string{"+", "-", "*", "/", "=", "calculate", "calculation", "equation", "formula", "number", "math"},
		instructions: "You handle quantitative and structural reasoning. Check " +
			"arithmetic, derive formulas, and make vague quantities precise.",
	},
	{
		id:       "skeptic",
		name:     "Skeptic",
		kind:     entities.KindWorker,
		keywords: []string{"logic", "reasoning", "argument", "evidence", "proof", "assumption", "therefore", "because", "if", "then"},
		instructions: "You test claims. Point out unsupported assumptions, " +
			"contradictions, and missing evidence.",
	},
	{
		id:       "dreamer",
		name:     "Dreamer",
		kind:     entities.KindWorker,
		keywords: []string{"imagine", "creative", "vision", "dream", "possibility", "metaphor"},
		instructions: "You make unexpected connections. Propose associations the " +
			"other roles would not, even speculative ones.",
	},
	{
		id:       "investigator",
		name:     "Investigator",
		kind:     entities.KindWorker,
		keywords: []string{"why", "cause", "effect", "pattern", "research", "investigate", "explore", "discover"},
		instructions: "You trace causes and patterns. Follow chains of cause and " +
			"effect and name the pattern when you see one.",
	},
	{
		id:       "philosopher",
		name:     "Philosopher",
		kind:     entities.KindWorker,
		keywords: []string{"meaning", "ethics", "moral", "truth", "existence", "philosophy", "value", "ought"},
		instructions: "You examine meaning and value. Surface the ethical and " +
			"conceptual stakes behind the content.",
	},
	{
		id:       "archivist",
		name:     "Archivist",
		kind:     entities.KindWorker,
		keywords: []string{"record", "archive", "history", "store", "memory", "organize", "catalog", "remember"},
		instructions: "You keep the record straight. Relate new content to what is " +
			"already stored and flag duplicates or conflicts with it.",
	},
	{
		id:       "linguist",
		name:     "Linguist",
		kind:     entities.KindWorker,
		keywords: []string{"word", "language", "grammar", "meaning of", "definition", "translate", "phrase"},
		instructions: "You attend to language itself. Clarify ambiguous wording and " +
			"tighten definitions.",
	},
}

// SeedTroupe registers the standard troupe into an empty registry.
// Registering over an existing population returns the registry's
// duplicate error for the first collision.
func SeedTroupe(ctx context.Context, registry ports.RoleRegistry) error {
	for _, seed := range standardTroupe {
		role, err := entities.NewRoleDescriptor(seed.id, seed.name, seed.kind, seed.keywords, seed.instructions)
		if err != nil {
			return err
		}
		if err := registry.Register(ctx, role); err != nil {
			return err
		}
	}
	return nil
}
