// Package services contains domain services over users and profile fields.
// These services are stateless and safe to call from any goroutine.
package services

import (
	"math"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// IsValid reports whether a profile field is well formed.
//
// Rules, evaluated in order and short-circuiting:
//  1. the field exists, is object-shaped, and has a discriminant and a name
//  2. the value's runtime type matches the discriminant
//  3. unknown discriminants are rejected
//
// It works the same on persisted fields and on freshly built draft fields.
func IsValid(field *entities.ProfileField) bool {
	if field == nil || !field.IsComposite() || field.FieldType.IsZero() || field.Name == "" {
		return false
	}

	switch field.FieldType {
	case values.FieldTypeText:
		_, ok := field.Value.(string)
		return ok
	case values.FieldTypeNumber:
		n, ok := entities.AsFloat(field.Value)
		return ok && !math.IsNaN(n) && !math.IsInf(n, 0)
	case values.FieldTypeGender:
		_, ok := entities.AsGender(field.Value)
		return ok
	default:
		return false
	}
}
