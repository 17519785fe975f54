package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// BaseInfo returns the discriminant and name shared by every variant.
// It fails when the field cannot be narrowed to a concrete variant.
func BaseInfo(field entities.ProfileField) (values.FieldType, string, error) {
	v, err := field.ValueByDiscriminator()
	if err != nil {
		return "", "", err
	}
	switch f := v.(type) {
	case entities.TextField:
		return values.FieldTypeText, f.Name, nil
	case entities.NumberField:
		return values.FieldTypeNumber, f.Name, nil
	case entities.GenderField:
		return values.FieldTypeGender, f.Name, nil
	default:
		return "", "", fmt.Errorf("unknown profile field variant %T", v)
	}
}

func normalizeFieldName(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// ValidateFieldNames reports one message per offending field: fields that
// cannot be narrowed, empty names and duplicates. Names are compared after
// trimming and case folding. An empty result means the list is acceptable.
func ValidateFieldNames(fields []entities.ProfileField) []string {
	var problems []string
	used := make(map[string]bool, len(fields))

	for i, f := range fields {
		_, name, err := BaseInfo(f)
		if err != nil {
			problems = append(problems, fmt.Sprintf("field[%d]: %v", i, err))
			continue
		}
		n := normalizeFieldName(name)
		if n == "" {
			problems = append(problems, fmt.Sprintf("field[%d]: name is empty", i))
			continue
		}
		if used[n] {
			problems = append(problems, fmt.Sprintf("field[%d]: name %q is duplicated", i, name))
			continue
		}
		used[n] = true
	}
	return problems
}

// FilterFieldsByName keeps the well-formed fields whose name equals name exactly.
func FilterFieldsByName(fields []entities.ProfileField, name string) []entities.ProfileField {
	var filtered []entities.ProfileField
	for _, f := range fields {
		_, n, err := BaseInfo(f)
		if err != nil {
			continue
		}
		if n == name {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// FieldNameStats counts how often each field name occurs across users.
// Fields that cannot be narrowed are skipped.
func FieldNameStats(users []entities.User) map[string]int {
	stats := make(map[string]int)
	for _, u := range users {
		for _, f := range u.ProfileFields {
			if _, name, err := BaseInfo(f); err == nil {
				stats[name]++
			}
		}
	}
	return stats
}

// LogFieldNames writes one debug line per field.
func LogFieldNames(logger *slog.Logger, fields []entities.ProfileField) {
	if logger == nil {
		logger = slog.Default()
	}
	for i, f := range fields {
		fieldType, name, err := BaseInfo(f)
		if err != nil {
			logger.Debug("profile field rejected", "index", i, "error", err)
			continue
		}
		logger.Debug("profile field", "index", i, "type", fieldType, "name", name)
	}
}
