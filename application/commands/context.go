package commands

import (
	pkgerrors "strainbrain/pkg/errors"
)

// CreateContextCommand creates a named grouping context.
type CreateContextCommand struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=10000"`
}

// Validate checks the command's shape.
func (cmd CreateContextCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// AddEntityToContextCommand attaches an entity to a context. Attaching an
// existing member is a no-op.
type AddEntityToContextCommand struct {
	EntityID  string `json:"entity_id" validate:"required"`
	ContextID string `json:"context_id" validate:"required"`
}

// Validate checks the command's shape.
func (cmd AddEntityToContextCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
