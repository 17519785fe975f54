package values

import (
	"fmt"
	"strings"
)

// Gender is the value of a gender profile field.
type Gender string

const (
	// GenderMale is the "male" literal
	GenderMale Gender = "male"
	// GenderFemale is the "female" literal
	GenderFemale Gender = "female"
)

// ParseGender parses a gender selection from user input.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g, nil
}

// Validate returns an error unless the value is exactly one of the two literals.
func (g Gender) Validate() error {
	switch g {
	case GenderMale, GenderFemale:
		return nil
	default:
		return fmt.Errorf("invalid gender: %q", string(g))
	}
}

// Label returns the display label.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return string(g)
	}
}

// String returns the wire representation
func (g Gender) String() string {
	return string(g)
}
