package services

import (
	"fmt"
	"strconv"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// InvalidFieldWarning is attached to the view of any field that fails IsValid.
const InvalidFieldWarning = "warning: this field's data is invalid"

// FieldView is the display representation of one profile field.
type FieldView struct {
	FieldType  values.FieldType
	Name       string
	Value      string
	TypeLabel  string
	Warning    string
	Position   int
	Classified bool
}

// RenderField maps a field to its display representation.
//
// Classification (for display) and validation (for the warning) are separate
// checks: a field with a mismatched value is still shown through the variant
// its discriminant selects, and carries a warning on top.
func RenderField(field entities.ProfileField, position int) FieldView {
	view := FieldView{
		Position:  position,
		FieldType: field.FieldType,
		Name:      field.Name,
		Value:     formatRawValue(field.Value),
	}

	switch Classify(field) {
	case values.FieldTypeText:
		view.Classified = true
		view.TypeLabel = values.FieldTypeText.Label()
	case values.FieldTypeNumber:
		view.Classified = true
		view.TypeLabel = values.FieldTypeNumber.Label()
	case values.FieldTypeGender:
		view.Classified = true
		view.TypeLabel = values.FieldTypeGender.Label()
		view.Value = genderLabel(field.Value)
	default:
		// unclassified: raw value, no type label
	}

	if !IsValid(&field) {
		view.Warning = InvalidFieldWarning
	}
	return view
}

// RenderFields renders fields in order, numbering positions from zero.
func RenderFields(fields []entities.ProfileField) []FieldView {
	views := make([]FieldView, 0, len(fields))
	for i, f := range fields {
		views = append(views, RenderField(f, i))
	}
	return views
}

// Invalid reports whether the view carries the invalid-data warning.
func (v FieldView) Invalid() bool {
	return v.Warning != ""
}

// String returns the one-line display form, e.g. "Age: 30 (Number)".
func (v FieldView) String() string {
	if v.TypeLabel == "" {
		return fmt.Sprintf("%s: %s", v.Name, v.Value)
	}
	return fmt.Sprintf("%s: %s (%s)", v.Name, v.Value, v.TypeLabel)
}

// genderLabel is a two-way lookup: only the exact "male" literal shows as male,
// everything else shows as female.
func genderLabel(v any) string {
	var s string
	switch g := v.(type) {
	case string:
		s = g
	case values.Gender:
		s = string(g)
	}
	if values.Gender(s) == values.GenderMale {
		return values.GenderMale.Label()
	}
	return values.GenderFemale.Label()
}

func formatRawValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", x)
	}
}
