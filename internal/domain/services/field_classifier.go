package services

import (
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// The predicates below look at the discriminant only, never at the value.

// IsTextField reports whether the field declares itself as text.
func IsTextField(field entities.ProfileField) bool {
	return field.FieldType == values.FieldTypeText
}

// IsNumberField reports whether the field declares itself as a number.
func IsNumberField(field entities.ProfileField) bool {
	return field.FieldType == values.FieldTypeNumber
}

// IsGenderField reports whether the field declares itself as a gender.
func IsGenderField(field entities.ProfileField) bool {
	return field.FieldType == values.FieldTypeGender
}

// Classify runs the predicates in the order text, number, gender and returns
// the first match, or the empty FieldType when none matches.
func Classify(field entities.ProfileField) values.FieldType {
	switch {
	case IsTextField(field):
		return values.FieldTypeText
	case IsNumberField(field):
		return values.FieldTypeNumber
	case IsGenderField(field):
		return values.FieldTypeGender
	default:
		return ""
	}
}
