package apiclient

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrNoAPIVersion is returned by CheckVersion when the backend did not
// advertise a version.
var ErrNoAPIVersion = errors.New("backend did not report an API version")

// CheckVersion reports whether apiVersion satisfies constraint,
// e.g. ">= 1.0.0, < 2.0.0".
func CheckVersion(constraint, apiVersion string) error {
	if apiVersion == "" {
		return ErrNoAPIVersion
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid API version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return fmt.Errorf("invalid API version %q: %w", apiVersion, err)
	}

	if ok, errs := c.Validate(v); !ok {
		return fmt.Errorf("API version %s is not supported (want %s): %w", v, constraint, errors.Join(errs...))
	}
	return nil
}
