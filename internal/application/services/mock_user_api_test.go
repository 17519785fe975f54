package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// MockUserAPI is a mock implementation of ports.UserAPI
type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) Hello(ctx context.Context) (*dto.HelloResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.HelloResponse)
	return resp, args.Error(1)
}

func (m *MockUserAPI) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entities.User)
	return users, args.Error(1)
}

func (m *MockUserAPI) GetUser(ctx context.Context, id values.UserID) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserAPI) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*entities.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserAPI) UpdateUser(ctx context.Context, id values.UserID, req dto.UpdateUserRequest) (*entities.User, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserAPI) DeleteUser(ctx context.Context, id values.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// countingRefresher records how often Refresh was called.
type countingRefresher struct {
	err   error
	calls int
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}
