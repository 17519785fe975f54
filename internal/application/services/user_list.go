package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/services"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// Messages surfaced by the user list.
const (
	MsgFetchUsersFailed = "failed to fetch users"
	MsgDeleteUserFailed = "failed to delete user"
)

// UserList holds the last fetched list of users and the greeting.
// The list is replaced wholesale on every successful fetch; concurrent
// fetches are not serialized and the last one to finish wins.
type UserList struct {
	api    ports.UserAPI
	logger *slog.Logger

	mu       sync.Mutex
	users    []entities.User
	hello    *dto.HelloResponse
	errMsg   string
	inFlight int
	deleting bool
}

// NewUserList creates an empty list backed by api.
func NewUserList(api ports.UserAPI, logger *slog.Logger) *UserList {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserList{api: api, logger: logger}
}

// Load performs the initial load: the greeting and the users are fetched
// concurrently. A failed greeting is only logged.
func (l *UserList) Load(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		hello, err := l.api.Hello(ctx)
		if err != nil {
			l.logger.Warn("hello request failed", "error", err)
			return nil
		}
		l.mu.Lock()
		l.hello = hello
		l.mu.Unlock()
		l.logger.Debug("hello fetched", "message", hello.Message, "api_version", hello.APIVersion)
		return nil
	})

	g.Go(func() error {
		return l.Refresh(ctx)
	})

	return g.Wait()
}

// Refresh re-fetches the whole list. On failure the current list is kept.
func (l *UserList) Refresh(ctx context.Context) error {
	l.begin()
	defer l.end()

	l.logger.Debug("fetching users")
	users, err := l.api.ListUsers(ctx)
	if err != nil {
		msg := fmt.Sprintf("%s: %s", MsgFetchUsersFailed, apperrors.UserMessage(err))
		l.setErr(msg)
		l.logger.Error("fetch users failed", "error", err)
		return apperrors.NewOperationError(msg, err)
	}

	l.mu.Lock()
	l.users = users
	l.mu.Unlock()
	l.logger.Debug("users fetched", "count", len(users))
	return nil
}

// Delete removes a user through the API and then re-fetches the list.
// Nothing is removed locally before the API confirms.
func (l *UserList) Delete(ctx context.Context, id values.UserID) error {
	l.mu.Lock()
	if l.deleting {
		l.mu.Unlock()
		return apperrors.ErrBusy
	}
	l.deleting = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.deleting = false
		l.mu.Unlock()
	}()

	l.begin()
	err := l.api.DeleteUser(ctx, id)
	l.end()
	if err != nil {
		l.setErr(MsgDeleteUserFailed)
		l.logger.Error("delete user failed", "id", id, "error", err)
		return apperrors.NewOperationError(MsgDeleteUserFailed, err)
	}

	l.logger.Info("user deleted", "id", id)
	return l.Refresh(ctx)
}

// Users returns a copy of the current list.
func (l *UserList) Users() []entities.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entities.User, len(l.users))
	copy(out, l.users)
	return out
}

// Filter returns the users in the current list that match expression.
// An empty expression matches everyone.
func (l *UserList) Filter(expression string) ([]entities.User, error) {
	users := l.Users()
	if expression == "" {
		return users, nil
	}
	filter, err := services.CompileUserFilter(expression)
	if err != nil {
		return nil, apperrors.NewInputError(err.Error())
	}
	return filter.Apply(users)
}

// Hello returns the greeting from the last Load, or nil.
func (l *UserList) Hello() *dto.HelloResponse {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hello
}

// Loading reports whether a fetch or delete is in flight.
func (l *UserList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight > 0
}

// Err returns the last surfaced message, or "" when the last operation succeeded.
func (l *UserList) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

func (l *UserList) begin() {
	l.mu.Lock()
	l.inFlight++
	l.errMsg = ""
	l.mu.Unlock()
}

func (l *UserList) end() {
	l.mu.Lock()
	l.inFlight--
	l.mu.Unlock()
}

func (l *UserList) setErr(msg string) {
	l.mu.Lock()
	l.errMsg = msg
	l.mu.Unlock()
}
