// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/repositories"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// Ensure interface compliance
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository is an in-memory implementation of repositories.UserRepository.
// Users are kept in insertion order; IDs are never reused.
type UserRepository struct {
	now    func() time.Time
	users  []entities.User
	nextID values.UserID
	mu     sync.RWMutex
}

// Option configures a UserRepository.
type Option func(*UserRepository)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *UserRepository) { r.now = now }
}

// NewUserRepository creates an empty repository.
func NewUserRepository(opts ...Option) *UserRepository {
	r := &UserRepository{now: time.Now, nextID: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed stores users as given, keeping their IDs. Missing or duplicate IDs
// are replaced with fresh ones; missing timestamps are set to now.
func (r *UserRepository) Seed(users []entities.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[values.UserID]bool, len(r.users)+len(users))
	for _, u := range r.users {
		seen[u.ID] = true
	}

	now := r.now()
	for _, u := range users {
		u = cloneUser(u)
		if u.ID.Validate() != nil || seen[u.ID] {
			u.ID = r.maxIDLocked() + 1
		}
		if u.CreatedAt == nil {
			u.CreatedAt = timePtr(now)
		}
		if u.UpdatedAt == nil {
			u.UpdatedAt = timePtr(*u.CreatedAt)
		}
		seen[u.ID] = true
		r.users = append(r.users, u)
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
}

func (r *UserRepository) maxIDLocked() values.UserID {
	maxID := r.nextID - 1
	for _, u := range r.users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID
}

// List returns all users in insertion order.
func (r *UserRepository) List(_ context.Context) ([]entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// FindByID retrieves a user by ID.
func (r *UserRepository) FindByID(_ context.Context, id values.UserID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", repositories.ErrUserNotFound, id)
	}
	u := cloneUser(r.users[i])
	return &u, nil
}

// Create assigns the next ID and the timestamps and stores the user.
func (r *UserRepository) Create(_ context.Context, user entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	u := cloneUser(user)
	u.ID = r.nextID
	u.CreatedAt = timePtr(now)
	u.UpdatedAt = timePtr(now)

	r.users = append(r.users, u)
	r.nextID++

	out := cloneUser(u)
	return &out, nil
}

// Update applies fn to a copy of the stored user and stores the result.
func (r *UserRepository) Update(_ context.Context, id values.UserID, fn func(*entities.User) error) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", repositories.ErrUserNotFound, id)
	}

	u := cloneUser(r.users[i])
	if err := fn(&u); err != nil {
		return nil, err
	}
	u.ID = id
	u.CreatedAt = r.users[i].CreatedAt
	u.UpdatedAt = timePtr(r.now())
	r.users[i] = u

	out := cloneUser(u)
	return &out, nil
}

// Delete removes a user.
func (r *UserRepository) Delete(_ context.Context, id values.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", repositories.ErrUserNotFound, id)
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRepository) indexLocked(id values.UserID) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func cloneUser(u entities.User) entities.User {
	if u.ProfileFields != nil {
		fields := make([]entities.ProfileField, len(u.ProfileFields))
		copy(fields, u.ProfileFields)
		u.ProfileFields = fields
	}
	if u.CreatedAt != nil {
		u.CreatedAt = timePtr(*u.CreatedAt)
	}
	if u.UpdatedAt != nil {
		u.UpdatedAt = timePtr(*u.UpdatedAt)
	}
	return u
}

func timePtr(t time.Time) *time.Time {
	return &t
}
