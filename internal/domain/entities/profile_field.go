// Package entities contains the domain entities: users and their profile fields.
package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// Variant is one of the three concrete profile field shapes.
// The set is closed: only this package implements it.
type Variant interface {
	FieldType() values.FieldType
	FieldName() string
	rawValue() any
}

// TextField is a profile field holding free text.
type TextField struct {
	Name  string
	Value string
}

// NumberField is a profile field holding a finite number.
type NumberField struct {
	Name  string
	Value float64
}

// GenderField is a profile field holding male or female.
type GenderField struct {
	Name  string
	Value values.Gender
}

// FieldType implements Variant
func (TextField) FieldType() values.FieldType { return values.FieldTypeText }

// FieldName implements Variant
func (f TextField) FieldName() string { return f.Name }

func (f TextField) rawValue() any { return f.Value }

// FieldType implements Variant
func (NumberField) FieldType() values.FieldType { return values.FieldTypeNumber }

// FieldName implements Variant
func (f NumberField) FieldName() string { return f.Name }

func (f NumberField) rawValue() any { return f.Value }

// FieldType implements Variant
func (GenderField) FieldType() values.FieldType { return values.FieldTypeGender }

// FieldName implements Variant
func (f GenderField) FieldName() string { return f.Name }

func (f GenderField) rawValue() any { return string(f.Value) }

// ProfileField is a profile entry as it is exchanged with the backend:
// a discriminant, a name and an untyped value. The discriminant is the declared
// source of truth, but nothing forces Value to agree with it; use
// ValueByDiscriminator to narrow to a Variant.
type ProfileField struct {
	Value     any
	FieldType values.FieldType
	Name      string

	// opaque marks a field decoded from a JSON/YAML value that was not an object.
	opaque bool
}

// NewTextField builds a text field.
func NewTextField(name, value string) ProfileField {
	return FromVariant(TextField{Name: name, Value: value})
}

// NewNumberField builds a number field. The value is not checked here.
func NewNumberField(name string, value float64) ProfileField {
	return FromVariant(NumberField{Name: name, Value: value})
}

// NewGenderField builds a gender field.
func NewGenderField(name string, value values.Gender) ProfileField {
	return FromVariant(GenderField{Name: name, Value: value})
}

// FromVariant converts a concrete variant into its wire record.
func FromVariant(v Variant) ProfileField {
	return ProfileField{
		FieldType: v.FieldType(),
		Name:      v.FieldName(),
		Value:     v.rawValue(),
	}
}

// Discriminator returns the declared field type.
func (f ProfileField) Discriminator() values.FieldType {
	return f.FieldType
}

// IsComposite reports whether the field came from an object-shaped value.
// Fields built in code are always composite.
func (f ProfileField) IsComposite() bool {
	return !f.opaque
}

// ValueByDiscriminator narrows the field to its concrete variant, selected by
// the discriminant alone. It fails when the value does not fit the declared
// variant or the discriminant is unknown.
func (f ProfileField) ValueByDiscriminator() (Variant, error) {
	if f.opaque {
		return nil, fmt.Errorf("profile field is not an object")
	}

	switch f.FieldType {
	case values.FieldTypeText:
		s, ok := f.Value.(string)
		if !ok {
			return nil, fmt.Errorf("text field %q: value is %T, not a string", f.Name, f.Value)
		}
		return TextField{Name: f.Name, Value: s}, nil
	case values.FieldTypeNumber:
		n, ok := AsFloat(f.Value)
		if !ok {
			return nil, fmt.Errorf("number field %q: value is %T, not a number", f.Name, f.Value)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("number field %q: value is not finite", f.Name)
		}
		return NumberField{Name: f.Name, Value: n}, nil
	case values.FieldTypeGender:
		g, ok := AsGender(f.Value)
		if !ok {
			return nil, fmt.Errorf("gender field %q: value %v is neither male nor female", f.Name, f.Value)
		}
		return GenderField{Name: f.Name, Value: g}, nil
	default:
		return nil, fmt.Errorf("unknown profile field type %q", string(f.FieldType))
	}
}

// AsFloat converts any Go numeric kind to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// AsGender returns the gender held by v if it is exactly one of the two literals.
func AsGender(v any) (values.Gender, bool) {
	var g values.Gender
	switch s := v.(type) {
	case string:
		g = values.Gender(s)
	case values.Gender:
		g = s
	default:
		return "", false
	}
	if g.Validate() != nil {
		return "", false
	}
	return g, true
}

// profileFieldWire is the JSON/YAML object shape of a profile field.
type profileFieldWire struct {
	FieldType values.FieldType `json:"fieldType" yaml:"fieldType"`
	Name      string           `json:"name" yaml:"name"`
	Value     any              `json:"value" yaml:"value"`
}

// MarshalJSON implements json.Marshaler
func (f ProfileField) MarshalJSON() ([]byte, error) {
	if f.opaque {
		return json.Marshal(f.Value)
	}
	return json.Marshal(profileFieldWire{FieldType: f.FieldType, Name: f.Name, Value: f.Value})
}

// UnmarshalJSON implements json.Unmarshaler.
// Any well-formed JSON value is accepted; shape problems are left to the validator.
func (f *ProfileField) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("invalid profile field JSON")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid profile field JSON: %w", err)
	}
	*f = fromDecoded(raw)
	if n, ok := f.Value.(json.Number); ok {
		// Out-of-range numbers stay json.Number and fail validation.
		if v, err := n.Float64(); err == nil {
			f.Value = v
		}
	}
	return nil
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler
func (f ProfileField) MarshalYAML() (interface{}, error) {
	if f.opaque {
		return f.Value, nil
	}
	return profileFieldWire{FieldType: f.FieldType, Name: f.Name, Value: f.Value}, nil
}

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler
func (f *ProfileField) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("invalid profile field YAML: %w", err)
	}
	*f = fromDecoded(raw)
	return nil
}

// fromDecoded builds a field from a generically decoded document node.
func fromDecoded(raw any) ProfileField {
	var obj map[string]any
	switch m := raw.(type) {
	case map[string]any:
		obj = m
	case map[any]any:
		obj = make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				obj[ks] = v
			}
		}
	default:
		return ProfileField{opaque: true, Value: raw}
	}

	field := ProfileField{Value: obj["value"]}
	if ft, ok := obj["fieldType"].(string); ok {
		field.FieldType = values.FieldType(ft)
	}
	if name, ok := obj["name"].(string); ok {
		field.Name = name
	}
	return field
}
