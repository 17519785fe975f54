package main

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

const fieldFlagUsage = "Profile field as name:type:value, type one of text, number, gender (repeatable)"

// parseFieldFlag parses name:type:value. The value may contain colons; the
// name may not. Emptiness and number syntax are left to the editor so that
// the same messages are reported everywhere.
func parseFieldFlag(raw string) (dto.FieldInput, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return dto.FieldInput{}, fmt.Errorf("invalid field %q: expected name:type:value", raw)
	}

	fieldType, err := values.ParseFieldType(parts[1])
	if err != nil {
		return dto.FieldInput{}, fmt.Errorf("invalid field %q: %w", raw, err)
	}

	in := dto.FieldInput{Name: parts[0], Type: fieldType, Gender: values.GenderMale}
	if fieldType == values.FieldTypeGender {
		g, err := values.ParseGender(parts[2])
		if err != nil {
			return dto.FieldInput{}, fmt.Errorf("invalid field %q: %w", raw, err)
		}
		in.Gender = g
		return in, nil
	}

	in.Value = parts[2]
	return in, nil
}

func parseFieldFlags(raws []string) ([]dto.FieldInput, error) {
	inputs := make([]dto.FieldInput, 0, len(raws))
	for _, raw := range raws {
		in, err := parseFieldFlag(raw)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
