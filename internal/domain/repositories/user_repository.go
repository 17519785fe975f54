// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"
	"errors"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// ErrUserNotFound is returned when no user has the requested ID.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for persisting users.
type UserRepository interface {
	// List returns all users in insertion order.
	List(ctx context.Context) ([]entities.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id values.UserID) (*entities.User, error)

	// Create assigns the next ID and the timestamps, stores the user and returns it.
	Create(ctx context.Context, user entities.User) (*entities.User, error)

	// Update applies fn to the stored user and refreshes UpdatedAt.
	// Nothing is stored if fn returns an error.
	Update(ctx context.Context, id values.UserID, fn func(*entities.User) error) (*entities.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id values.UserID) error
}
