package queries

import "errors"

// RolesStatusQuery reports the full role troupe.
type RolesStatusQuery struct{}

// Validate validates the query.
func (q RolesStatusQuery) Validate() error { return nil }

// RoleView is the read-model shape for one role.
type RoleView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	State     string   `json:"state"`
	Strain    float64  `json:"strain"`
	MaxStrain float64  `json:"max_strain"`
	Keywords  []string `json:"keywords,omitempty"`
}

// StrainStatusQuery reports aggregate strain over the graph, plus the
// current attention state.
type StrainStatusQuery struct{}

// Validate validates the query.
func (q StrainStatusQuery) Validate() error { return nil }

// StrainStatusResult summarizes system strain.
type StrainStatusResult struct {
	Attention        string  `json:"attention"`
	EntityCount      int     `json:"entity_count"`
	RelationshipLoad int     `json:"relationship_count"`
	ThoughtCount     int     `json:"thought_count"`
	TotalAmplitude   float64 `json:"total_amplitude"`
	MaxAmplitude     float64 `json:"max_amplitude"`
	Dissonant        int     `json:"dissonant_entities"`
}

// GetContextQuery fetches one context by id.
type GetContextQuery struct {
	ContextID string `json:"context_id"`
}

// Validate validates the query.
func (q GetContextQuery) Validate() error {
	if q.ContextID == "" {
		return errors.New("context id is required")
	}
	return nil
}

// ContextView is the read-model shape for one context.
type ContextView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EntityIDs   []string `json:"entity_ids"`
}
