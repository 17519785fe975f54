// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	ProfileFields []entities.ProfileField `json:"profileFields,omitempty"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Nil members are left unchanged.
type UpdateUserRequest struct {
	Name          *string                  `json:"name,omitempty"`
	Email         *string                  `json:"email,omitempty"`
	ProfileFields *[]entities.ProfileField `json:"profileFields,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.ProfileFields == nil
}

// FieldInput is the pending, not yet validated input for one draft field.
type FieldInput struct {
	Name   string
	Type   values.FieldType
	Value  string
	Gender values.Gender
}

// DefaultFieldInput returns the scratch state of a fresh draft.
func DefaultFieldInput() FieldInput {
	return FieldInput{Type: values.FieldTypeText, Gender: values.GenderMale}
}

// FieldAction is what a person chose to do next with the draft's fields.
type FieldAction int

const (
	FieldActionAdd FieldAction = iota
	FieldActionRemove
	FieldActionDone
)

// FieldStep is one answer from an interactive field prompt.
// Input is set for FieldActionAdd, Position for FieldActionRemove.
type FieldStep struct {
	Input    FieldInput
	Action   FieldAction
	Position int
}
