package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/userprofiles/internal/infrastructure/audit"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/config"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/persistence/memory"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultEndpoint, c.Endpoint())
	assert.False(t, c.AuditTracker().Enabled())
	assert.NotNil(t, c.Editor())
	assert.NotNil(t, c.UserList())
	assert.NotNil(t, c.UserService())
	assert.NotNil(t, c.FormatterFactory())
	assert.NotNil(t, c.Prompter(nil, nil, true))
}

func TestNew_InvalidEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.API.Endpoint = "ftp://example.com"

	_, err := New(Options{Config: cfg})
	assert.Error(t, err)
}

func TestContainer_ServerAndClientTalk(t *testing.T) {
	repo := memory.NewUserRepository()
	repo.Seed(memory.DefaultUsers())

	base, err := New(Options{})
	require.NoError(t, err)
	srv, err := base.NewServer(repo)
	require.NoError(t, err)

	var sawAudit atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(audit.SessionHeader) != "" {
			sawAudit.Store(true)
		}
		srv.Handler().ServeHTTP(w, r)
	}))
	defer ts.Close()

	cfg := config.Default()
	cfg.API.Endpoint = ts.URL + "/api"
	cfg.Audit.Enabled = true

	c, err := New(Options{Config: cfg})
	require.NoError(t, err)

	require.NoError(t, c.UserList().Load(context.Background()))
	assert.Len(t, c.UserList().Users(), 2)
	require.NotNil(t, c.UserList().Hello())
	assert.True(t, sawAudit.Load())

	// The editor refreshes the shared list after a create.
	e := c.Editor()
	e.SetName("Jiro Sato")
	e.SetEmail("sato@example.com")
	_, err = e.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.UserList().Users(), 3)
}
