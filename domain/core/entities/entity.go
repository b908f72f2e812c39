package entities

import (
	"time"

	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
	pkgerrors "strainbrain/pkg/errors"
)

// EntityType classifies what kind of thing an entity names.
type EntityType string

const (
	TypePerson   EntityType = "person"
	TypePlace    EntityType = "place"
	TypeConcept  EntityType = "concept"
	TypeObject   EntityType = "object"
	TypeEvent    EntityType = "event"
	TypeDocument EntityType = "document"
)

// ValidEntityType reports whether t is one of the closed entity types.
func ValidEntityType(t EntityType) bool {
	switch t {
	case TypePerson, TypePlace, TypeConcept, TypeObject, TypeEvent, TypeDocument:
		return true
	default:
		return false
	}
}

// Entity is a node in the strain graph.
// It is a rich domain model: all mutation goes through methods that keep
// the modified timestamp and the strain access statistics consistent.
type Entity struct {
	id          valueobjects.EntityID
	name        string
	entityType  EntityType
	description string
	attributes  map[string]string
	strain      valueobjects.StrainVector
	contextIDs  []valueobjects.ContextID
	created     time.Time
	modified    time.Time

	events []events.DomainEvent
}

// NewEntity creates an entity with default strain.
func NewEntity(id valueobjects.EntityID, name string, entityType EntityType, description string) (*Entity, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("entity id cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("entity name cannot be empty")
	}
	if !ValidEntityType(entityType) {
		return nil, pkgerrors.NewValidationError("unknown entity type: " + string(entityType))
	}

	now := time.Now()
	e := &Entity{
		id:          id,
		name:        name,
		entityType:  entityType,
		description: description,
		attributes:  make(map[string]string),
		strain:      valueobjects.NewStrainVector(),
		created:     now,
		modified:    now,
	}
	e.addEvent(events.NewEntityCreated(id, name, string(entityType), now))
	return e, nil
}

// ReconstructEntity rebuilds an entity from loaded data with preserved
// strain and timestamps. Used by the bulk loader.
func ReconstructEntity(
	id valueobjects.EntityID,
	name string,
	entityType EntityType,
	description string,
	strain valueobjects.StrainVector,
	created, modified time.Time,
) (*Entity, error) {
	if id.IsZero() || name == "" {
		return nil, pkgerrors.NewValidationError("entity id and name are required")
	}
	if !ValidEntityType(entityType) {
		entityType = TypeConcept
	}
	return &Entity{
		id:          id,
		name:        name,
		entityType:  entityType,
		description: description,
		attributes:  make(map[string]string),
		strain:      strain,
		created:     created,
		modified:    modified,
	}, nil
}

// ID returns the entity's identifier.
func (e *Entity) ID() valueobjects.EntityID { return e.id }

// Name returns the entity's name.
func (e *Entity) Name() string { return e.name }

// Type returns the entity's type.
func (e *Entity) Type() EntityType { return e.entityType }

// Description returns the entity's description.
func (e *Entity) Description() string { return e.description }

// Strain returns the entity's strain vector.
func (e *Entity) Strain() valueobjects.StrainVector { return e.strain }

// Created returns when the entity was created.
func (e *Entity) Created() time.Time { return e.created }

// Modified returns when the entity was last mutated.
func (e *Entity) Modified() time.Time { return e.modified }

// Attribute returns a named attribute value.
func (e *Entity) Attribute(key string) (string, bool) {
	v, ok := e.attributes[key]
	return v, ok
}

// Attributes returns a copy of the attribute map.
func (e *Entity) Attributes() map[string]string {
	out := make(map[string]string, len(e.attributes))
	for k, v := range e.attributes {
		out[k] = v
	}
	return out
}

// ContextIDs returns a copy of the ordered context membership list.
func (e *Entity) ContextIDs() []valueobjects.ContextID {
	out := make([]valueobjects.ContextID, len(e.contextIDs))
	copy(out, e.contextIDs)
	return out
}

// Rename updates the entity's name and description.
func (e *Entity) Rename(name, description string) error {
	if name == "" {
		return pkgerrors.NewValidationError("entity name cannot be empty")
	}
	e.name = name
	e.description = description
	e.touch()
	return nil
}

// SetAttribute sets a single attribute.
func (e *Entity) SetAttribute(key, value string) error {
	if key == "" {
		return pkgerrors.NewValidationError("attribute key cannot be empty")
	}
	e.attributes[key] = value
	e.touch()
	return nil
}

// AttachContext appends a context id to the membership list and refreshes
// the strain frequency. Re-attaching an already-member context is a no-op.
func (e *Entity) AttachContext(ctxID valueobjects.ContextID) bool {
	for _, existing := range e.contextIDs {
		if existing.Equals(ctxID) {
			return false
		}
	}
	e.contextIDs = append(e.contextIDs, ctxID)
	e.strain = e.strain.WithFrequency(len(e.contextIDs))
	e.touch()
	return true
}

// ApplyStrain replaces the entity's strain vector. Only the strain engine
// and context attachment are expected to call this.
func (e *Entity) ApplyStrain(strain valueobjects.StrainVector) {
	e.strain = strain
	e.touch()
}

// Touch refreshes the modified timestamp. The graph store calls this on
// every successful update so modified strictly increases per mutation.
func (e *Entity) Touch() {
	e.touch()
}

// RecordAccess advances the strain access statistics without counting as
// a content mutation.
func (e *Entity) RecordAccess(at time.Time) {
	e.strain = e.strain.Touched(at)
}

// GetUncommittedEvents returns all uncommitted domain events.
func (e *Entity) GetUncommittedEvents() []events.DomainEvent {
	return e.events
}

// MarkEventsAsCommitted clears the uncommitted events.
func (e *Entity) MarkEventsAsCommitted() {
	e.events = nil
}

func (e *Entity) addEvent(event events.DomainEvent) {
	e.events = append(e.events, event)
}

func (e *Entity) touch() {
	now := time.Now()
	if !now.After(e.modified) {
		// Guard against coarse clocks: modified must strictly increase.
		now = e.modified.Add(time.Nanosecond)
	}
	e.modified = now
}
