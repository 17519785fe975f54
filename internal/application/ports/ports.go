// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// UserAPI is the users collaborator. Non-2xx answers come back as
// *apperrors.APIError.
type UserAPI interface {
	Hello(ctx context.Context) (*dto.HelloResponse, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUser(ctx context.Context, id values.UserID) (*entities.User, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*entities.User, error)
	UpdateUser(ctx context.Context, id values.UserID, req dto.UpdateUserRequest) (*entities.User, error)
	DeleteUser(ctx context.Context, id values.UserID) error
}

// Refresher re-fetches the user list after a mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RequestValidator checks raw request bodies before they are decoded.
type RequestValidator interface {
	ValidateCreate(body []byte) error
	ValidateUpdate(body []byte) error
}

// FieldPrompter collects draft fields from a person interactively.
// start pre-fills the add form and draft lists the fields already in the
// draft, in order, so one can be picked for removal.
type FieldPrompter interface {
	PromptIdentity(ctx context.Context, name, email string) (string, string, error)
	PromptField(ctx context.Context, start dto.FieldInput, draft []string) (dto.FieldStep, error)
}

// OutputFormatter writes users in a specific output format.
type OutputFormatter interface {
	Format(users []entities.User) error
}

// FormatterOptions tunes the formatters that support it.
type FormatterOptions struct {
	Indent  bool
	NoColor bool
}

// OutputFormatterFactory creates output formatters.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
}
