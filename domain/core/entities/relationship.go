package entities

import (
	"time"

	"strainbrain/domain/core/valueobjects"
	pkgerrors "strainbrain/pkg/errors"
)

// Relationship is a directed edge between two entities. Both endpoints
// must exist when the edge is created; duplicates of the same
// (from, to, type) triple are allowed.
type Relationship struct {
	id         valueobjects.RelationshipID
	fromEntity valueobjects.EntityID
	toEntity   valueobjects.EntityID
	relType    string
	attributes map[string]string
	strain     valueobjects.StrainVector
	created    time.Time
	modified   time.Time
}

// NewRelationship creates a relationship with default strain.
func NewRelationship(
	id valueobjects.RelationshipID,
	from, to valueobjects.EntityID,
	relType string,
) (*Relationship, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("relationship id cannot be empty")
	}
	if from.IsZero() || to.IsZero() {
		return nil, pkgerrors.NewValidationError("relationship endpoints cannot be empty")
	}
	if relType == "" {
		return nil, pkgerrors.NewValidationError("relationship type cannot be empty")
	}

	now := time.Now()
	return &Relationship{
		id:         id,
		fromEntity: from,
		toEntity:   to,
		relType:    relType,
		attributes: make(map[string]string),
		strain:     valueobjects.NewStrainVector(),
		created:    now,
		modified:   now,
	}, nil
}

// ID returns the relationship's identifier.
func (r *Relationship) ID() valueobjects.RelationshipID { return r.id }

// From returns the source entity id.
func (r *Relationship) From() valueobjects.EntityID { return r.fromEntity }

// To returns the target entity id.
func (r *Relationship) To() valueobjects.EntityID { return r.toEntity }

// Type returns the relationship type.
func (r *Relationship) Type() string { return r.relType }

// Strain returns the relationship's strain vector.
func (r *Relationship) Strain() valueobjects.StrainVector { return r.strain }

// Created returns when the relationship was created.
func (r *Relationship) Created() time.Time { return r.created }

// Modified returns when the relationship was last mutated.
func (r *Relationship) Modified() time.Time { return r.modified }

// Touches reports whether the given entity is one of the endpoints.
func (r *Relationship) Touches(id valueobjects.EntityID) bool {
	return r.fromEntity.Equals(id) || r.toEntity.Equals(id)
}

// OtherEnd returns the endpoint opposite to the given entity. The second
// return is false when the entity is not an endpoint at all.
func (r *Relationship) OtherEnd(id valueobjects.EntityID) (valueobjects.EntityID, bool) {
	switch {
	case r.fromEntity.Equals(id):
		return r.toEntity, true
	case r.toEntity.Equals(id):
		return r.fromEntity, true
	default:
		return valueobjects.EntityID{}, false
	}
}

// SetAttribute sets a single attribute.
func (r *Relationship) SetAttribute(key, value string) error {
	if key == "" {
		return pkgerrors.NewValidationError("attribute key cannot be empty")
	}
	r.attributes[key] = value
	r.modified = time.Now()
	return nil
}

// ApplyStrain replaces the relationship's strain vector.
func (r *Relationship) ApplyStrain(strain valueobjects.StrainVector) {
	r.strain = strain
	r.modified = time.Now()
}
