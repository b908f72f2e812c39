package commands

import (
	"github.com/go-playground/validator/v10"

	"strainbrain/domain/core/entities"
	pkgerrors "strainbrain/pkg/errors"
)

var validate = validator.New()

// CreateEntityCommand creates a new entity in the graph.
type CreateEntityCommand struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	EntityType  string `json:"entity_type" validate:"required"`
	Description string `json:"description" validate:"max=10000"`
}

// Validate checks the command's shape.
func (cmd CreateEntityCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if !entities.ValidEntityType(entities.EntityType(cmd.EntityType)) {
		return pkgerrors.NewValidationError("unknown entity type: " + cmd.EntityType)
	}
	return nil
}

// UpdateEntityCommand renames an entity or replaces its description.
type UpdateEntityCommand struct {
	EntityID    string `json:"entity_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=10000"`
}

// Validate checks the command's shape.
func (cmd UpdateEntityCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// DeleteEntityCommand removes an entity. Relationships referencing it are
// left in place and skipped by traversal.
type DeleteEntityCommand struct {
	EntityID string `json:"entity_id" validate:"required"`
}

// Validate checks the command's shape.
func (cmd DeleteEntityCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
