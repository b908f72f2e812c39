package commands

import (
	pkgerrors "strainbrain/pkg/errors"
)

// CreateThoughtCommand asserts a verified thought over existing entities
// and runs one scheduler turn for it.
type CreateThoughtCommand struct {
	Name        string   `json:"name" validate:"required,min=1"`
	Description string   `json:"description" validate:"max=10000"`
	Connections []string `json:"connections" validate:"required,min=1,dive,required"`
	Source      string   `json:"source" validate:"max=200"`
	Confidence  float64  `json:"confidence" validate:"gte=0,lte=1"`
}

// Validate checks the command's shape. Linguistic admissibility is the
// thought validator's call, made by the handler.
func (cmd CreateThoughtCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// SetAttentionCommand moves the scheduler's attention state.
type SetAttentionCommand struct {
	State string `json:"state" validate:"required,oneof=wake dream sleep"`
}

// Validate checks the command's shape.
func (cmd SetAttentionCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// TransitionRoleCommand moves a role through its lifecycle state machine.
type TransitionRoleCommand struct {
	RoleID string `json:"role_id" validate:"required"`
	State  string `json:"state" validate:"required,oneof=inactive available active"`
}

// Validate checks the command's shape.
func (cmd TransitionRoleCommand) Validate() error {
	if err := validate.Struct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
