package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// UpdateUserCommand describes a partial update. Nil members are left unchanged;
// a non-nil Fields replaces the whole field list.
type UpdateUserCommand struct {
	Name   *string
	Email  *string
	Fields *[]dto.FieldInput
}

// UserService covers the single-user operations that have no draft state.
type UserService struct {
	api    ports.UserAPI
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(api ports.UserAPI, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{api: api, logger: logger}
}

// Get fetches one user.
func (s *UserService) Get(ctx context.Context, id values.UserID) (*entities.User, error) {
	user, err := s.api.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// Update applies cmd to user id. Field inputs go through the same checks as
// Editor.AddField; the first bad input aborts before any call is made.
func (s *UserService) Update(ctx context.Context, id values.UserID, cmd UpdateUserCommand) (*entities.User, error) {
	req := dto.UpdateUserRequest{Name: cmd.Name, Email: cmd.Email}

	if cmd.Fields != nil {
		fields := make([]entities.ProfileField, 0, len(*cmd.Fields))
		for i, in := range *cmd.Fields {
			f, err := buildField(in)
			if err != nil {
				return nil, apperrors.NewInputError(fmt.Sprintf("field[%d]: %v", i, err))
			}
			fields = append(fields, f)
		}
		req.ProfileFields = &fields
	}

	if req.IsEmpty() {
		return nil, apperrors.NewInputError("nothing to update")
	}

	s.logger.Debug("updating user", "id", id)
	user, err := s.api.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, apperrors.NewOperationError(
			fmt.Sprintf("failed to update user: %s", apperrors.UserMessage(err)), err)
	}
	return user, nil
}
