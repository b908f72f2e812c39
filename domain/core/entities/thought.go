package entities

import (
	"time"

	"strainbrain/domain/core/valueobjects"
	pkgerrors "strainbrain/pkg/errors"
)

// Thought is a verified, ordered sequence of entity references standing
// for one asserted unit of knowledge. Once stored, everything but the
// strain vector is immutable.
type Thought struct {
	id                 valueobjects.ThoughtID
	name               string
	description        string
	connections        []valueobjects.EntityID
	verified           bool
	verificationSource string
	confidence         float64
	strain             valueobjects.StrainVector
	origin             valueobjects.ThoughtID
	created            time.Time
	modified           time.Time
}

// NewThought creates a thought over the given entity connections.
// Structural admissibility (how many connections are enough) is the
// validator's job; this constructor only rejects the empty sequence.
func NewThought(
	id valueobjects.ThoughtID,
	name, description string,
	connections []valueobjects.EntityID,
	verified bool,
	verificationSource string,
	confidence float64,
) (*Thought, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("thought id cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("thought name cannot be empty")
	}
	if len(connections) == 0 {
		return nil, pkgerrors.NewValidationError("thought must reference at least one entity")
	}

	now := time.Now()
	conns := make([]valueobjects.EntityID, len(connections))
	copy(conns, connections)
	return &Thought{
		id:                 id,
		name:               name,
		description:        description,
		connections:        conns,
		verified:           verified,
		verificationSource: verificationSource,
		confidence:         clampConfidence(confidence),
		strain:             valueobjects.NewStrainVector(),
		created:            now,
		modified:           now,
	}, nil
}

// NewDerivedThought creates a thought produced by a role dispatch,
// carrying the triggering thought's id as provenance.
func NewDerivedThought(
	id valueobjects.ThoughtID,
	name, description string,
	connections []valueobjects.EntityID,
	origin valueobjects.ThoughtID,
	source string,
	confidence float64,
) (*Thought, error) {
	t, err := NewThought(id, name, description, connections, false, source, confidence)
	if err != nil {
		return nil, err
	}
	t.origin = origin
	return t, nil
}

// ID returns the thought's identifier.
func (t *Thought) ID() valueobjects.ThoughtID { return t.id }

// Name returns the thought's name.
func (t *Thought) Name() string { return t.name }

// Description returns the thought's description.
func (t *Thought) Description() string { return t.description }

// Verified reports whether the thought passed verification.
func (t *Thought) Verified() bool { return t.verified }

// VerificationSource names where the verification came from.
func (t *Thought) VerificationSource() string { return t.verificationSource }

// Confidence returns the confidence in [0,1].
func (t *Thought) Confidence() float64 { return t.confidence }

// Strain returns the thought's strain vector.
func (t *Thought) Strain() valueobjects.StrainVector { return t.strain }

// Origin returns the triggering thought id for derived thoughts. Zero for
// thoughts asserted directly.
func (t *Thought) Origin() valueobjects.ThoughtID { return t.origin }

// Created returns when the thought was created.
func (t *Thought) Created() time.Time { return t.created }

// Modified returns when the thought's strain was last updated.
func (t *Thought) Modified() time.Time { return t.modified }

// Connections returns a copy of the ordered entity reference list.
func (t *Thought) Connections() []valueobjects.EntityID {
	out := make([]valueobjects.EntityID, len(t.connections))
	copy(out, t.connections)
	return out
}

// References reports whether the thought touches the given entity.
func (t *Thought) References(id valueobjects.EntityID) bool {
	for _, conn := range t.connections {
		if conn.Equals(id) {
			return true
		}
	}
	return false
}

// ApplyStrain replaces the thought's strain vector, the only mutation a
// stored thought permits.
func (t *Thought) ApplyStrain(strain valueobjects.StrainVector) {
	t.strain = strain
	t.modified = time.Now()
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
