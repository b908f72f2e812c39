package events

import (
	"time"

	"github.com/google/uuid"

	"strainbrain/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events.
// Events record something that has already happened; observers such as
// the visualization bridge and the metrics sink consume them after the
// owning store has committed the mutation.
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(aggregateID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
	}
}

// Graph events

// EntityCreated is raised when a new entity enters the graph.
type EntityCreated struct {
	BaseEvent
	EntityID valueobjects.EntityID `json:"entity_id"`
	Name     string                `json:"name"`
	Type     string                `json:"type"`
}

// NewEntityCreated creates an EntityCreated event.
func NewEntityCreated(id valueobjects.EntityID, name, entityType string, timestamp time.Time) EntityCreated {
	return EntityCreated{
		BaseEvent: newBase(id.String(), "entity.created", timestamp),
		EntityID:  id,
		Name:      name,
		Type:      entityType,
	}
}

// EntityDeleted is raised when an entity is removed. Relationships that
// referenced the entity are left in place and skipped during traversal.
type EntityDeleted struct {
	BaseEvent
	EntityID valueobjects.EntityID `json:"entity_id"`
}

// NewEntityDeleted creates an EntityDeleted event.
func NewEntityDeleted(id valueobjects.EntityID, timestamp time.Time) EntityDeleted {
	return EntityDeleted{
		BaseEvent: newBase(id.String(), "entity.deleted", timestamp),
		EntityID:  id,
	}
}

// RelationshipCreated is raised when two entities are connected.
type RelationshipCreated struct {
	BaseEvent
	RelationshipID string                `json:"relationship_id"`
	From           valueobjects.EntityID `json:"from"`
	To             valueobjects.EntityID `json:"to"`
	RelType        string                `json:"rel_type"`
	Amplitude      float64               `json:"amplitude"`
}

// NewRelationshipCreated creates a RelationshipCreated event.
func NewRelationshipCreated(relID string, from, to valueobjects.EntityID, relType string, amplitude float64, timestamp time.Time) RelationshipCreated {
	return RelationshipCreated{
		BaseEvent:      newBase(relID, "relationship.created", timestamp),
		RelationshipID: relID,
		From:           from,
		To:             to,
		RelType:        relType,
		Amplitude:      amplitude,
	}
}

// ContextAttached is raised when an entity joins a context.
type ContextAttached struct {
	BaseEvent
	ContextID valueobjects.ContextID `json:"context_id"`
	EntityID  valueobjects.EntityID  `json:"entity_id"`
	Frequency int                    `json:"frequency"`
}

// NewContextAttached creates a ContextAttached event.
func NewContextAttached(ctxID valueobjects.ContextID, entityID valueobjects.EntityID, frequency int, timestamp time.Time) ContextAttached {
	return ContextAttached{
		BaseEvent: newBase(ctxID.String(), "context.attached", timestamp),
		ContextID: ctxID,
		EntityID:  entityID,
		Frequency: frequency,
	}
}

// Thought events

// ThoughtVerified is raised when a thought passes validation and is stored.
type ThoughtVerified struct {
	BaseEvent
	ThoughtID   valueobjects.ThoughtID  `json:"thought_id"`
	Name        string                  `json:"name"`
	Connections []valueobjects.EntityID `json:"connections"`
}

// NewThoughtVerified creates a ThoughtVerified event.
func NewThoughtVerified(id valueobjects.ThoughtID, name string, connections []valueobjects.EntityID, timestamp time.Time) ThoughtVerified {
	return ThoughtVerified{
		BaseEvent:   newBase(id.String(), "thought.verified", timestamp),
		ThoughtID:   id,
		Name:        name,
		Connections: connections,
	}
}

// ThoughtDerived is raised when a role dispatch produces a new thought.
type ThoughtDerived struct {
	BaseEvent
	ThoughtID valueobjects.ThoughtID `json:"thought_id"`
	Origin    valueobjects.ThoughtID `json:"origin"`
	RoleID    string                 `json:"role_id"`
}

// NewThoughtDerived creates a ThoughtDerived event.
func NewThoughtDerived(id, origin valueobjects.ThoughtID, roleID string, timestamp time.Time) ThoughtDerived {
	return ThoughtDerived{
		BaseEvent: newBase(id.String(), "thought.derived", timestamp),
		ThoughtID: id,
		Origin:    origin,
		RoleID:    roleID,
	}
}

// Strain events

// StrainPropagated is raised after a propagation sweep completes.
type StrainPropagated struct {
	BaseEvent
	Seed          valueobjects.EntityID   `json:"seed"`
	Visited       int                     `json:"visited"`
	Contradictory []valueobjects.EntityID `json:"contradictory,omitempty"`
}

// NewStrainPropagated creates a StrainPropagated event.
func NewStrainPropagated(seed valueobjects.EntityID, visited int, contradictory []valueobjects.EntityID, timestamp time.Time) StrainPropagated {
	return StrainPropagated{
		BaseEvent:     newBase(seed.String(), "strain.propagated", timestamp),
		Seed:          seed,
		Visited:       visited,
		Contradictory: contradictory,
	}
}

// Role events

// RoleStateChanged is raised on every effective role state transition.
type RoleStateChanged struct {
	BaseEvent
	RoleID string `json:"role_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// NewRoleStateChanged creates a RoleStateChanged event.
func NewRoleStateChanged(roleID, from, to string, timestamp time.Time) RoleStateChanged {
	return RoleStateChanged{
		BaseEvent: newBase(roleID, "role.state_changed", timestamp),
		RoleID:    roleID,
		From:      from,
		To:        to,
	}
}

// AttentionChanged is raised when the scheduler's attention state moves.
type AttentionChanged struct {
	BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// NewAttentionChanged creates an AttentionChanged event.
func NewAttentionChanged(from, to string, timestamp time.Time) AttentionChanged {
	return AttentionChanged{
		BaseEvent: newBase("scheduler", "attention.changed", timestamp),
		From:      from,
		To:        to,
	}
}
