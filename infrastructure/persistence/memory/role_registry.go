package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/events"
	pkgerrors "strainbrain/pkg/errors"
)

// RoleRegistryStore is the in-memory implementation of the RoleRegistry
// port. Background duty-cycle sweeps and user-triggered turns share it,
// so every state transition goes through the store mutex.
type RoleRegistryStore struct {
	mu sync.RWMutex

	roles map[string]*entities.RoleDescriptor
	order []string

	bus    ports.EventBus
	logger *zap.Logger
}

// NewRoleRegistryStore creates an empty registry.
func NewRoleRegistryStore(bus ports.EventBus, logger *zap.Logger) *RoleRegistryStore {
	return &RoleRegistryStore{
		roles:  make(map[string]*entities.RoleDescriptor),
		bus:    bus,
		logger: logger,
	}
}

var _ ports.RoleRegistry = (*RoleRegistryStore)(nil)

// Register adds a role. Duplicate ids are a conflict.
func (s *RoleRegistryStore) Register(ctx context.Context, role *entities.RoleDescriptor) error {
	if role == nil {
		return pkgerrors.NewValidationError("role cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roles[role.ID()]; exists {
		return pkgerrors.NewConflictError("role " + role.ID() + " already registered")
	}

	s.roles[role.ID()] = role
	s.order = append(s.order, role.ID())

	s.logger.Info("role registered",
		zap.String("id", role.ID()),
		zap.String("kind", string(role.Kind())),
		zap.String("state", string(role.State())),
	)
	return nil
}

// Get retrieves a role by id.
func (s *RoleRegistryStore) Get(ctx context.Context, id string) (*entities.RoleDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	return role, ok
}

// List returns all roles in registration order.
func (s *RoleRegistryStore) List(ctx context.Context) []*entities.RoleDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.RoleDescriptor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.roles[id])
	}
	return out
}

// Available returns the roles currently eligible for dispatch.
func (s *RoleRegistryStore) Available(ctx context.Context) []*entities.RoleDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.RoleDescriptor
	for _, id := range s.order {
		if role := s.roles[id]; role.State() == entities.StateAvailable {
			out = append(out, role)
		}
	}
	return out
}

// Coordinator returns the always-active coordinator role.
func (s *RoleRegistryStore) Coordinator(ctx context.Context) (*entities.RoleDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if role := s.roles[id]; role.Kind() == entities.KindCoordinator {
			return role, true
		}
	}
	return nil, false
}

// Transition moves a role through its state machine under the store lock.
func (s *RoleRegistryStore) Transition(ctx context.Context, id string, target entities.RoleState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[id]
	if !ok {
		return false, pkgerrors.NewNotFoundError("role " + id)
	}

	from := role.State()
	changed, err := role.TransitionTo(target)
	if err != nil {
		return false, err
	}
	if !changed {
		if role.Kind() == entities.KindCoordinator && target != entities.StateActive {
			s.logger.Info("ignored attempt to deactivate coordinator",
				zap.String("id", id),
				zap.String("requested", string(target)),
			)
		}
		return false, nil
	}

	s.logger.Debug("role transitioned",
		zap.String("id", id),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewRoleStateChanged(id, string(from), string(target), time.Now()))
	}
	return true, nil
}

// AddStrain accumulates dispatch strain on a role.
func (s *RoleRegistryStore) AddStrain(ctx context.Context, id string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[id]
	if !ok {
		return pkgerrors.NewNotFoundError("role " + id)
	}
	role.AddStrain(delta)
	return nil
}

// RelaxAll decays accumulated strain across the troupe.
func (s *RoleRegistryStore) RelaxAll(ctx context.Context, factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, role := range s.roles {
		role.Relax(factor)
	}
}
