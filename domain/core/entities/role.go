package entities

import (
	"strings"
	"time"

	pkgerrors "strainbrain/pkg/errors"
)

// RoleKind partitions the role troupe by lifecycle contract.
type RoleKind string

const (
	// KindCoordinator is the always-active role that brokers every turn.
	KindCoordinator RoleKind = "coordinator"
	// KindInterface is the role toggled around each user turn.
	KindInterface RoleKind = "interface"
	// KindWorker covers every dispatchable specialist.
	KindWorker RoleKind = "worker"
)

// RoleState is a role's lifecycle state.
type RoleState string

const (
	StateInactive  RoleState = "inactive"
	StateAvailable RoleState = "available"
	StateActive    RoleState = "active"
)

// RoleDescriptor describes one processing role: who it is, what content
// it claims, how strained it currently is, and where it sits in the
// lifecycle state machine.
type RoleDescriptor struct {
	id             string
	name           string
	kind           RoleKind
	state          RoleState
	strain         float64
	maxStrain      float64
	domainKeywords []string
	instructions   string
	created        time.Time
	lastAccessed   time.Time
}

// NewRoleDescriptor creates a role. Coordinators start active, workers
// start available, interface roles start inactive.
func NewRoleDescriptor(id, name string, kind RoleKind, keywords []string, instructions string) (*RoleDescriptor, error) {
	if id == "" || name == "" {
		return nil, pkgerrors.NewValidationError("role id and name are required")
	}

	state := StateAvailable
	switch kind {
	case KindCoordinator:
		state = StateActive
	case KindInterface:
		state = StateInactive
	case KindWorker:
		state = StateAvailable
	default:
		return nil, pkgerrors.NewValidationError("unknown role kind: " + string(kind))
	}

	kw := make([]string, len(keywords))
	for i, k := range keywords {
		kw[i] = strings.ToLower(k)
	}

	now := time.Now()
	return &RoleDescriptor{
		id:             id,
		name:           name,
		kind:           kind,
		state:          state,
		maxStrain:      1.0,
		domainKeywords: kw,
		instructions:   instructions,
		created:        now,
		lastAccessed:   now,
	}, nil
}

// ID returns the role's identifier.
func (r *RoleDescriptor) ID() string { return r.id }

// Name returns the role's display name.
func (r *RoleDescriptor) Name() string { return r.name }

// Kind returns the role's kind.
func (r *RoleDescriptor) Kind() RoleKind { return r.kind }

// State returns the role's current lifecycle state.
func (r *RoleDescriptor) State() RoleState { return r.state }

// Strain returns the role's accumulated strain.
func (r *RoleDescriptor) Strain() float64 { return r.strain }

// MaxStrain returns the role's strain ceiling.
func (r *RoleDescriptor) MaxStrain() float64 { return r.maxStrain }

// Instructions returns the role's standing instructions for dispatch.
func (r *RoleDescriptor) Instructions() string { return r.instructions }

// Created returns when the role was registered.
func (r *RoleDescriptor) Created() time.Time { return r.created }

// LastAccessed returns when the role last participated in a turn.
func (r *RoleDescriptor) LastAccessed() time.Time { return r.lastAccessed }

// DomainKeywords returns a copy of the role's keyword profile.
func (r *RoleDescriptor) DomainKeywords() []string {
	out := make([]string, len(r.domainKeywords))
	copy(out, r.domainKeywords)
	return out
}

// DomainMatch reports whether the role claims the given content. The
// coordinator matches everything; other roles match on case-insensitive
// keyword containment.
func (r *RoleDescriptor) DomainMatch(content string) bool {
	if r.kind == KindCoordinator {
		return true
	}
	lower := strings.ToLower(content)
	for _, kw := range r.domainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// TransitionTo applies the lifecycle state machine.
//
//   - The coordinator is pinned active. Requests to deactivate it return
//     false (a logged no-op at the registry), never an error.
//   - Interface roles move only between inactive and active.
//   - Workers move between inactive and available under coordinator
//     control, and between available and active around a dispatch.
//
// The bool reports whether the state actually changed.
func (r *RoleDescriptor) TransitionTo(target RoleState) (bool, error) {
	if target == r.state {
		return false, nil
	}

	switch r.kind {
	case KindCoordinator:
		// Pinned. Not an error so callers can sweep all roles uniformly.
		return false, nil

	case KindInterface:
		if target == StateAvailable {
			return false, pkgerrors.NewValidationError("interface role cannot be pooled as available")
		}

	case KindWorker:
		if r.state == StateInactive && target == StateActive {
			return false, pkgerrors.NewValidationError("withdrawn role must be made available before activation")
		}
	}

	r.state = target
	r.lastAccessed = time.Now()
	return true, nil
}

// AddStrain accumulates dispatch strain, clamped to [0, maxStrain].
func (r *RoleDescriptor) AddStrain(delta float64) {
	r.strain += delta
	if r.strain < 0 {
		r.strain = 0
	}
	if r.strain > r.maxStrain {
		r.strain = r.maxStrain
	}
	r.lastAccessed = time.Now()
}

// Relax clears accumulated strain, used by the background duty cycle.
func (r *RoleDescriptor) Relax(factor float64) {
	if factor < 0 || factor >= 1 {
		r.strain = 0
		return
	}
	r.strain *= factor
}
