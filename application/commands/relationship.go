package commands

import (
	pkgerrors "strainbrain/pkg/errors"
)

// CreateRelationshipCommand connects two entities. The edge's initial
// amplitude comes from the gravity law and strain is propagated from both
// endpoints afterward.
type CreateRelationshipCommand struct {
	FromEntityID     string `json:"from_entity_id" validate:"required"`
	ToEntityID       string `json:"to_entity_id" validate:"required"`
	RelationshipType string `json:"relationship_type" validate:"required,min=1,max=100"`
}

// Validate checks the command's shape.
func (cmd CreateRelationshipCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if cmd.FromEntityID == cmd.ToEntityID {
		return pkgerrors.NewValidationError("relationship endpoints must differ")
	}
	return nil
}
