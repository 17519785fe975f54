package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/repositories"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.User{
		ID:            99,
		Name:          "Alice",
		Email:         "alice@example.com",
		ProfileFields: []entities.ProfileField{entities.NewTextField("Hobby", "chess")},
	})
	require.NoError(t, err)
	assert.Equal(t, values.UserID(1), created.ID, "ID is assigned by the repository")
	require.NotNil(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, created.ProfileFields, found.ProfileFields)

	_, err = repo.FindByID(ctx, 42)
	assert.True(t, errors.Is(err, repositories.ErrUserNotFound))
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.User{
		Name:          "Alice",
		Email:         "alice@example.com",
		ProfileFields: []entities.ProfileField{entities.NewTextField("Hobby", "chess")},
	})
	require.NoError(t, err)

	created.ProfileFields[0] = entities.NewTextField("Hobby", "go")
	created.Name = "Mallory"

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "chess", found.ProfileFields[0].Value)
}

func TestUserRepository_Seed(t *testing.T) {
	repo := NewUserRepository()
	repo.Seed(DefaultUsers())
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, values.UserID(1), users[0].ID)
	assert.Equal(t, values.UserID(2), users[1].ID)
	assert.NotNil(t, users[0].CreatedAt)

	created, err := repo.Create(ctx, entities.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, values.UserID(3), created.ID)
}

func TestUserRepository_SeedReplacesDuplicateIDs(t *testing.T) {
	repo := NewUserRepository()
	repo.Seed([]entities.User{
		{ID: 5, Name: "A", Email: "a@example.com"},
		{ID: 5, Name: "B", Email: "b@example.com"},
		{Name: "C", Email: "c@example.com"},
	})

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, values.UserID(5), users[0].ID)
	assert.Equal(t, values.UserID(6), users[1].ID)
	assert.Equal(t, values.UserID(7), users[2].ID)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, func(u *entities.User) error {
		u.Email = "alice@example.org"
		u.ID = 1000
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "ID cannot be changed")
	assert.Equal(t, "alice@example.org", updated.Email)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(*created.UpdatedAt))
}

func TestUserRepository_UpdateErrorStoresNothing(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, created.ID, func(u *entities.User) error {
		u.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)

	_, err = repo.Update(ctx, 77, func(*entities.User) error { return nil })
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository()
	repo.Seed(DefaultUsers())
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 1))
	assert.Equal(t, 1, repo.Len())
	assert.ErrorIs(t, repo.Delete(ctx, 1), repositories.ErrUserNotFound)

	created, err := repo.Create(ctx, entities.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, values.UserID(3), created.ID, "IDs are never reused")
}

func TestUserRepository_ConcurrentCreate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, entities.User{Name: "n", Email: "e"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 50)

	seen := make(map[values.UserID]bool)
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate ID %s", u.ID)
		seen[u.ID] = true
	}
}

func TestLoadSeedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "users key",
			content: `
users:
  - id: 10
    name: Alice
    email: alice@example.com
    profileFields:
      - fieldType: number
        name: Age
        value: 41
      - fieldType: gender
        name: Sex
        value: female
`,
		},
		{
			name: "bare list",
			content: `
- id: 10
  name: Alice
  email: alice@example.com
  profileFields:
    - fieldType: number
      name: Age
      value: 41
    - fieldType: gender
      name: Sex
      value: female
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			users, err := LoadSeedFile(path)
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, values.UserID(10), users[0].ID)
			require.Len(t, users[0].ProfileFields, 2)

			age, ok := entities.AsFloat(users[0].ProfileFields[0].Value)
			require.True(t, ok)
			assert.Equal(t, 41.0, age)
			assert.Equal(t, values.FieldTypeGender, users[0].ProfileFields[1].FieldType)
		})
	}
}

func TestLoadSeedFile_Errors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: NoEmail\n"), 0o600))
	_, err = LoadSeedFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user[0]")
}
