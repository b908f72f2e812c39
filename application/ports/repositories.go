package ports

import (
	"context"

	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
)

// EntityGraph owns entity, relationship, and context storage. It is pure
// CRUD: strain initialization and propagation live in the strain engine,
// which calls back into the graph through this port.
//
// Query operations signal absence through their ok result, never through
// errors. Mutating operations are not reentrant-safe against concurrent
// mutation; callers follow the single-writer discipline enforced by the
// scheduler.
type EntityGraph interface {
	// CreateEntity allocates the next entity id and stores a new entity.
	CreateEntity(ctx context.Context, name string, entityType entities.EntityType, description string) (*entities.Entity, error)

	// PutEntity stores a reconstructed entity under its own id. Used by
	// the bulk loader; refuses ids already present.
	PutEntity(ctx context.Context, entity *entities.Entity) error

	// GetEntity retrieves an entity by id.
	GetEntity(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, bool)

	// UpdateEntity re-stores an entity and refreshes its modified
	// timestamp. Returns false, without storing, when the id is absent.
	UpdateEntity(ctx context.Context, entity *entities.Entity) bool

	// DeleteEntity removes an entity. Relationships referencing it are
	// deliberately left dangling; traversals skip them.
	DeleteEntity(ctx context.Context, id valueobjects.EntityID) bool

	// ListEntities returns all entities in creation order.
	ListEntities(ctx context.Context) []*entities.Entity

	// CreateRelationship connects two existing entities. Fails with a
	// validation error when either endpoint is missing. Duplicate
	// (from, to, type) triples are permitted.
	CreateRelationship(ctx context.Context, from, to valueobjects.EntityID, relType string) (*entities.Relationship, error)

	// GetRelationship retrieves a relationship by id.
	GetRelationship(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, bool)

	// GetRelationships returns all relationships incident to the entity,
	// in either direction. Linear scan over the edge set.
	GetRelationships(ctx context.Context, entityID valueobjects.EntityID) []*entities.Relationship

	// ListRelationships returns all relationships in creation order.
	ListRelationships(ctx context.Context) []*entities.Relationship

	// CreateContext allocates the next context id and stores an empty
	// context.
	CreateContext(ctx context.Context, name, description string) (*entities.EntityContext, error)

	// GetContext retrieves a context by id.
	GetContext(ctx context.Context, id valueobjects.ContextID) (*entities.EntityContext, bool)

	// AddEntityToContext records bidirectional membership and recomputes
	// the entity's strain frequency. Idempotent: re-adding an existing
	// member reports false with no error and no state change.
	AddEntityToContext(ctx context.Context, entityID valueobjects.EntityID, contextID valueobjects.ContextID) (bool, error)
}

// ThoughtStore owns verified thought storage and the entity-to-thought
// reverse index.
type ThoughtStore interface {
	// CreateThought allocates the next thought id, stores the thought,
	// and indexes it under every entity it references. Indexing is
	// idempotent per (entity, thought) pair.
	CreateThought(ctx context.Context, name, description string, connections []valueobjects.EntityID, verified bool, source string, confidence float64) (*entities.Thought, error)

	// CreateDerivedThought stores a thought produced by a role dispatch,
	// linked back to its triggering thought.
	CreateDerivedThought(ctx context.Context, name, description string, connections []valueobjects.EntityID, origin valueobjects.ThoughtID, source string, confidence float64) (*entities.Thought, error)

	// PutThought stores a reconstructed thought under its own id. Used
	// by the bulk loader; refuses ids already present.
	PutThought(ctx context.Context, thought *entities.Thought) error

	// GetThought retrieves a thought by id.
	GetThought(ctx context.Context, id valueobjects.ThoughtID) (*entities.Thought, bool)

	// ListThoughts returns all thoughts in creation order.
	ListThoughts(ctx context.Context) []*entities.Thought

	// ThoughtsTouching returns the thoughts referencing the entity, via
	// the reverse index, in insertion order.
	ThoughtsTouching(ctx context.Context, entityID valueobjects.EntityID) []*entities.Thought
}

// RoleRegistry owns the role descriptors and serializes their lifecycle
// transitions.
type RoleRegistry interface {
	// Register adds a role. Duplicate ids are a conflict.
	Register(ctx context.Context, role *entities.RoleDescriptor) error

	// Get retrieves a role by id.
	Get(ctx context.Context, id string) (*entities.RoleDescriptor, bool)

	// List returns all roles in registration order.
	List(ctx context.Context) []*entities.RoleDescriptor

	// Available returns the roles currently eligible for dispatch.
	Available(ctx context.Context) []*entities.RoleDescriptor

	// Coordinator returns the always-active coordinator role.
	Coordinator(ctx context.Context) (*entities.RoleDescriptor, bool)

	// Transition moves a role through its state machine. Illegal
	// requests error; pinned-state no-ops (deactivating the
	// coordinator) report false and are logged, not errors.
	Transition(ctx context.Context, id string, target entities.RoleState) (bool, error)

	// AddStrain accumulates dispatch strain on a role.
	AddStrain(ctx context.Context, id string, delta float64) error

	// RelaxAll decays accumulated strain across the troupe. Used by the
	// background duty cycle.
	RelaxAll(ctx context.Context, factor float64)
}

// Completion is the external text-completion backend. Latency-bearing and
// fallible; callers wrap it with their own timeout and treat failure as a
// skipped contribution.
type Completion interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// EventBus fans domain events out to in-process observers such as the
// visualization bridge and the metrics sink. Observers must not mutate
// core state.
type EventBus interface {
	Publish(ctx context.Context, evts ...events.DomainEvent)
	Subscribe(fn func(events.DomainEvent))
}
