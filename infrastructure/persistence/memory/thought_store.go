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

// ThoughtMemoryStore is the in-memory implementation of the ThoughtStore
// port. Besides the primary map it maintains a reverse index from entity
// id to the thoughts referencing it, so lookup cost is proportional to
// the thoughts actually touching an entity.
type ThoughtMemoryStore struct {
	mu sync.RWMutex

	thoughts map[string]*entities.Thought
	order    []valueobjects.ThoughtID

	// entity id -> ordered thought ids referencing it
	byEntity map[string][]valueobjects.ThoughtID

	seq    uint64
	logger *zap.Logger
}

// NewThoughtMemoryStore creates an empty thought store.
func NewThoughtMemoryStore(logger *zap.Logger) *ThoughtMemoryStore {
	return &ThoughtMemoryStore{
		thoughts: make(map[string]*entities.Thought),
		byEntity: make(map[string][]valueobjects.ThoughtID),
		logger:   logger,
	}
}

var _ ports.ThoughtStore = (*ThoughtMemoryStore)(nil)

// CreateThought allocates the next thought id, stores, and indexes.
func (s *ThoughtMemoryStore) CreateThought(ctx context.Context, name, description string, connections []valueobjects.EntityID, verified bool, source string, confidence float64) (*entities.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := valueobjects.NewThoughtID(s.seq)

	thought, err := entities.NewThought(id, name, description, connections, verified, source, confidence)
	if err != nil {
		s.seq--
		return nil, err
	}

	s.store(thought)
	return thought, nil
}

// CreateDerivedThought stores a dispatch-produced thought with provenance.
func (s *ThoughtMemoryStore) CreateDerivedThought(ctx context.Context, name, description string, connections []valueobjects.EntityID, origin valueobjects.ThoughtID, source string, confidence float64) (*entities.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := valueobjects.NewThoughtID(s.seq)

	thought, err := entities.NewDerivedThought(id, name, description, connections, origin, source, confidence)
	if err != nil {
		s.seq--
		return nil, err
	}

	s.store(thought)
	return thought, nil
}

// PutThought stores a reconstructed thought under its own id.
func (s *ThoughtMemoryStore) PutThought(ctx context.Context, thought *entities.Thought) error {
	if thought == nil {
		return pkgerrors.NewValidationError("thought cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := thought.ID().String()
	if _, exists := s.thoughts[key]; exists {
		return pkgerrors.NewConflictError("thought " + key + " already exists")
	}

	s.store(thought)
	if seq := thought.ID().Sequence(); seq > s.seq {
		s.seq = seq
	}
	return nil
}

// GetThought retrieves a thought by id.
func (s *ThoughtMemoryStore) GetThought(ctx context.Context, id valueobjects.ThoughtID) (*entities.Thought, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thought, ok := s.thoughts[id.String()]
	return thought, ok
}

// ListThoughts returns all thoughts in creation order.
func (s *ThoughtMemoryStore) ListThoughts(ctx context.Context) []*entities.Thought {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Thought, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.thoughts[id.String()]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ThoughtsTouching returns the thoughts referencing an entity.
func (s *ThoughtMemoryStore) ThoughtsTouching(ctx context.Context, entityID valueobjects.EntityID) []*entities.Thought {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byEntity[entityID.String()]
	out := make([]*entities.Thought, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.thoughts[id.String()]; ok {
			out = append(out, t)
		}
	}
	return out
}

// store indexes a thought under every distinct entity it references.
// Caller holds the write lock.
func (s *ThoughtMemoryStore) store(thought *entities.Thought) {
	key := thought.ID().String()
	s.thoughts[key] = thought
	s.order = append(s.order, thought.ID())

	seen := make(map[string]bool)
	for _, entityID := range thought.Connections() {
		ek := entityID.String()
		if seen[ek] {
			continue
		}
		seen[ek] = true
		s.byEntity[ek] = append(s.byEntity[ek], thought.ID())
	}

	s.logger.Debug("thought stored",
		zap.String("id", key),
		zap.Int("connections", len(thought.Connections())),
		zap.Bool("verified", thought.Verified()),
	)
}
