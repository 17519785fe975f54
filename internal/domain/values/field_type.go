// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"strings"
)

// FieldType is the discriminant of a profile field.
type FieldType string

const (
	// FieldTypeText marks a free text field
	FieldTypeText FieldType = "text"
	// FieldTypeNumber marks a numeric field
	FieldTypeNumber FieldType = "number"
	// FieldTypeGender marks an enumerated male/female field
	FieldTypeGender FieldType = "gender"
)

// FieldTypes lists the closed set of discriminants in display order.
func FieldTypes() []FieldType {
	return []FieldType{FieldTypeText, FieldTypeNumber, FieldTypeGender}
}

// ParseFieldType parses a discriminant from user input.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(strings.ToLower(strings.TrimSpace(s)))
	if err := ft.Validate(); err != nil {
		return "", err
	}
	return ft, nil
}

// MustParseFieldType parses a discriminant or panics (for tests only)
func MustParseFieldType(s string) FieldType {
	ft, err := ParseFieldType(s)
	if err != nil {
		panic(err)
	}
	return ft
}

// Validate returns an error if the discriminant is outside the closed set.
func (t FieldType) Validate() error {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeGender:
		return nil
	default:
		return fmt.Errorf("invalid field type: %q", string(t))
	}
}

// IsZero returns true if no discriminant is set
func (t FieldType) IsZero() bool {
	return t == ""
}

// Label returns the display label for the discriminant.
func (t FieldType) Label() string {
	switch t {
	case FieldTypeText:
		return "Text"
	case FieldTypeNumber:
		return "Number"
	case FieldTypeGender:
		return "Gender"
	default:
		return string(t)
	}
}

// String returns the wire representation
func (t FieldType) String() string {
	return string(t)
}
