package queries

import (
	"errors"
	"time"
)

// GetEntityQuery fetches one entity by id.
type GetEntityQuery struct {
	EntityID string `json:"entity_id"`
}

// Validate validates the query.
func (q GetEntityQuery) Validate() error {
	if q.EntityID == "" {
		return errors.New("entity id is required")
	}
	return nil
}

// ListEntitiesQuery lists every entity in creation order.
type ListEntitiesQuery struct{}

// Validate validates the query.
func (q ListEntitiesQuery) Validate() error { return nil }

// EntityView is the read-model shape for one entity.
type EntityView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	EntityType  string      `json:"entity_type"`
	Description string      `json:"description"`
	Strain      StrainView  `json:"strain"`
	ContextIDs  []string    `json:"context_ids"`
	Created     time.Time   `json:"created"`
	Modified    time.Time   `json:"modified"`
}

// StrainView is the read-model shape for a strain vector.
type StrainView struct {
	Amplitude      float64   `json:"amplitude"`
	Resistance     float64   `json:"resistance"`
	Frequency      int       `json:"frequency"`
	NodeResistance float64   `json:"node_resistance"`
	Note           string    `json:"note"`
	Octave         int       `json:"octave"`
	LastAccessed   time.Time `json:"last_accessed"`
	AccessCount    int       `json:"access_count"`
}
