package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	pkgerrors "strainbrain/pkg/errors"
)

// EntityGraphStore is the in-memory implementation of the EntityGraph
// port. The graph is volatile and single-process; a store-level RWMutex
// plus the scheduler's one-turn-at-a-time discipline is the whole
// concurrency story.
type EntityGraphStore struct {
	mu sync.RWMutex

	entities    map[string]*entities.Entity
	entityOrder []valueobjects.EntityID

	relationships map[string]*entities.Relationship
	relOrder      []valueobjects.RelationshipID

	contexts     map[string]*entities.EntityContext
	contextOrder []valueobjects.ContextID

	entitySeq  uint64
	relSeq     uint64
	contextSeq uint64

	logger *zap.Logger
}

// NewEntityGraphStore creates an empty graph store.
func NewEntityGraphStore(logger *zap.Logger) *EntityGraphStore {
	return &EntityGraphStore{
		entities:      make(map[string]*entities.Entity),
		relationships: make(map[string]*entities.Relationship),
		contexts:      make(map[string]*entities.EntityContext),
		logger:        logger,
	}
}

var _ ports.EntityGraph = (*EntityGraphStore)(nil)

// CreateEntity allocates the next entity id and stores a new entity.
func (s *EntityGraphStore) CreateEntity(ctx context.Context, name string, entityType entities.EntityType, description string) (*entities.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entitySeq++
	id := valueobjects.NewEntityID(s.entitySeq)

	entity, err := entities.NewEntity(id, name, entityType, description)
	if err != nil {
		s.entitySeq--
		return nil, err
	}

	s.entities[id.String()] = entity
	s.entityOrder = append(s.entityOrder, id)

	s.logger.Debug("entity created",
		zap.String("id", id.String()),
		zap.String("name", name),
		zap.String("type", string(entityType)),
	)
	return entity, nil
}

// PutEntity stores a reconstructed entity under its own id.
func (s *EntityGraphStore) PutEntity(ctx context.Context, entity *entities.Entity) error {
	if entity == nil {
		return pkgerrors.NewValidationError("entity cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := entity.ID().String()
	if _, exists := s.entities[key]; exists {
		return pkgerrors.NewConflictError("entity " + key + " already exists")
	}

	s.entities[key] = entity
	s.entityOrder = append(s.entityOrder, entity.ID())
	if seq := entity.ID().Sequence(); seq > s.entitySeq {
		s.entitySeq = seq
	}
	return nil
}

// GetEntity retrieves an entity by id.
func (s *EntityGraphStore) GetEntity(ctx context.Context, id valueobjects.EntityID) (*entities.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id.String()]
	return entity, ok
}

// UpdateEntity re-stores an entity, refreshing its modified timestamp.
// Absent ids fail silently with false.
func (s *EntityGraphStore) UpdateEntity(ctx context.Context, entity *entities.Entity) bool {
	if entity == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := entity.ID().String()
	if _, exists := s.entities[key]; !exists {
		return false
	}

	entity.Touch()
	s.entities[key] = entity
	return true
}

// DeleteEntity removes an entity and its context memberships. Incident
// relationships stay behind as dangling edges; traversal skips them.
func (s *EntityGraphStore) DeleteEntity(ctx context.Context, id valueobjects.EntityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := id.String()
	if _, exists := s.entities[key]; !exists {
		return false
	}

	delete(s.entities, key)
	for i, oid := range s.entityOrder {
		if oid.Equals(id) {
			s.entityOrder = append(s.entityOrder[:i], s.entityOrder[i+1:]...)
			break
		}
	}

	for _, c := range s.contexts {
		c.RemoveEntity(id)
	}

	s.logger.Debug("entity deleted", zap.String("id", key))
	return true
}

// ListEntities returns all entities in creation order.
func (s *EntityGraphStore) ListEntities(ctx context.Context) []*entities.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Entity, 0, len(s.entityOrder))
	for _, id := range s.entityOrder {
		if e, ok := s.entities[id.String()]; ok {
			out = append(out, e)
		}
	}
	return out
}

// CreateRelationship connects two existing entities.
func (s *EntityGraphStore) CreateRelationship(ctx context.Context, from, to valueobjects.EntityID, relType string) (*entities.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[from.String()]; !ok {
		return nil, pkgerrors.NewValidationError("relationship source " + from.String() + " does not exist")
	}
	if _, ok := s.entities[to.String()]; !ok {
		return nil, pkgerrors.NewValidationError("relationship target " + to.String() + " does not exist")
	}

	s.relSeq++
	id := valueobjects.NewRelationshipID(s.relSeq)

	rel, err := entities.NewRelationship(id, from, to, relType)
	if err != nil {
		s.relSeq--
		return nil, err
	}

	s.relationships[id.String()] = rel
	s.relOrder = append(s.relOrder, id)

	s.logger.Debug("relationship created",
		zap.String("id", id.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("type", relType),
	)
	return rel, nil
}

// GetRelationship retrieves a relationship by id.
func (s *EntityGraphStore) GetRelationship(ctx context.Context, id valueobjects.RelationshipID) (*entities.Relationship, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rel, ok := s.relationships[id.String()]
	return rel, ok
}

// GetRelationships returns all relationships incident to the entity.
// Linear scan over the whole edge set; fine at the target scale.
func (s *EntityGraphStore) GetRelationships(ctx context.Context, entityID valueobjects.EntityID) []*entities.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.Relationship
	for _, id := range s.relOrder {
		rel, ok := s.relationships[id.String()]
		if ok && rel.Touches(entityID) {
			out = append(out, rel)
		}
	}
	return out
}

// ListRelationships returns all relationships in creation order.
func (s *EntityGraphStore) ListRelationships(ctx context.Context) []*entities.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Relationship, 0, len(s.relOrder))
	for _, id := range s.relOrder {
		if rel, ok := s.relationships[id.String()]; ok {
			out = append(out, rel)
		}
	}
	return out
}

// CreateContext allocates the next context id and stores an empty context.
func (s *EntityGraphStore) CreateContext(ctx context.Context, name, description string) (*entities.EntityContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contextSeq++
	id := valueobjects.NewContextID(s.contextSeq)

	ec, err := entities.NewEntityContext(id, name, description)
	if err != nil {
		s.contextSeq--
		return nil, err
	}

	s.contexts[id.String()] = ec
	s.contextOrder = append(s.contextOrder, id)
	return ec, nil
}

// GetContext retrieves a context by id.
func (s *EntityGraphStore) GetContext(ctx context.Context, id valueobjects.ContextID) (*entities.EntityContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ec, ok := s.contexts[id.String()]
	return ec, ok
}

// AddEntityToContext records bidirectional membership. Idempotent.
func (s *EntityGraphStore) AddEntityToContext(ctx context.Context, entityID valueobjects.EntityID, contextID valueobjects.ContextID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[entityID.String()]
	if !ok {
		return false, pkgerrors.NewNotFoundError("entity " + entityID.String())
	}
	ec, ok := s.contexts[contextID.String()]
	if !ok {
		return false, pkgerrors.NewNotFoundError("context " + contextID.String())
	}

	added := ec.AddEntity(entityID)
	attached := entity.AttachContext(contextID)
	if !added && !attached {
		return false, nil
	}
	return true, nil
}
