package queries

import (
	"errors"
	"strings"
)

// ProcessQueryQuery scores stored thoughts against free text and names
// the roles that would claim the text.
type ProcessQueryQuery struct {
	Query string `json:"query"`
}

// Validate validates the query.
func (q ProcessQueryQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return errors.New("query text is required")
	}
	return nil
}

// ProcessQueryResult holds the ranked matches for one query.
type ProcessQueryResult struct {
	Query    string           `json:"query"`
	Thoughts []ThoughtMatch   `json:"thoughts"`
	Roles    []string         `json:"roles"`
}

// ThoughtMatch is one scored thought.
type ThoughtMatch struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Verified    bool     `json:"verified"`
	Confidence  float64  `json:"confidence"`
	Score       float64  `json:"score"`
	Connections []string `json:"connections"`
}

// GetThoughtQuery fetches one thought by id.
type GetThoughtQuery struct {
	ThoughtID string `json:"thought_id"`
}

// Validate validates the query.
func (q GetThoughtQuery) Validate() error {
	if q.ThoughtID == "" {
		return errors.New("thought id is required")
	}
	return nil
}

// ListThoughtsQuery lists all thoughts in creation order.
type ListThoughtsQuery struct{}

// Validate validates the query.
func (q ListThoughtsQuery) Validate() error { return nil }

// ThoughtView is the read-model shape for one thought.
type ThoughtView struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Connections        []string `json:"connections"`
	Verified           bool     `json:"verified"`
	VerificationSource string   `json:"verification_source,omitempty"`
	Confidence         float64  `json:"confidence"`
	Origin             string   `json:"origin,omitempty"`
}
