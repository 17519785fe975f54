package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// User is a person record owned by the backend.
// The client never edits a persisted user's fields in place; it re-fetches.
type User struct {
	CreatedAt     *time.Time     `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Name          string         `json:"name" yaml:"name"`
	Email         string         `json:"email" yaml:"email"`
	ProfileFields []ProfileField `json:"profileFields,omitempty" yaml:"profileFields,omitempty"`
	ID            values.UserID  `json:"id" yaml:"id"`
}

// Validate checks the attributes every user must carry.
// Email format is not checked.
func (u User) Validate() error {
	var errs []error
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, errors.New("user name is required"))
	}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, errors.New("user email is required"))
	}
	return errors.Join(errs...)
}

// FieldNames returns the names of the user's profile fields in order.
func (u User) FieldNames() []string {
	names := make([]string, 0, len(u.ProfileFields))
	for _, f := range u.ProfileFields {
		names = append(names, f.Name)
	}
	return names
}
