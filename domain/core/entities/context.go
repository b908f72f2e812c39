package entities

import (
	"time"

	"strainbrain/domain/core/valueobjects"
	pkgerrors "strainbrain/pkg/errors"
)

// EntityContext groups entities that belong to one situation or topic.
// Membership is bidirectional: the context keeps an ordered entity list
// and each member entity records the context id (see Entity.AttachContext).
type EntityContext struct {
	id          valueobjects.ContextID
	name        string
	description string
	entityIDs   []valueobjects.EntityID
	created     time.Time
}

// NewEntityContext creates an empty context.
func NewEntityContext(id valueobjects.ContextID, name, description string) (*EntityContext, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("context id cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("context name cannot be empty")
	}
	return &EntityContext{
		id:          id,
		name:        name,
		description: description,
		created:     time.Now(),
	}, nil
}

// ID returns the context's identifier.
func (c *EntityContext) ID() valueobjects.ContextID { return c.id }

// Name returns the context's name.
func (c *EntityContext) Name() string { return c.name }

// Description returns the context's description.
func (c *EntityContext) Description() string { return c.description }

// Created returns when the context was created.
func (c *EntityContext) Created() time.Time { return c.created }

// EntityIDs returns a copy of the ordered member list.
func (c *EntityContext) EntityIDs() []valueobjects.EntityID {
	out := make([]valueobjects.EntityID, len(c.entityIDs))
	copy(out, c.entityIDs)
	return out
}

// AddEntity appends an entity to the member list. Adding an existing
// member is a no-op, not an error.
func (c *EntityContext) AddEntity(id valueobjects.EntityID) bool {
	for _, existing := range c.entityIDs {
		if existing.Equals(id) {
			return false
		}
	}
	c.entityIDs = append(c.entityIDs, id)
	return true
}

// RemoveEntity drops an entity from the member list, preserving order.
func (c *EntityContext) RemoveEntity(id valueobjects.EntityID) bool {
	for i, existing := range c.entityIDs {
		if existing.Equals(id) {
			c.entityIDs = append(c.entityIDs[:i], c.entityIDs[i+1:]...)
			return true
		}
	}
	return false
}
