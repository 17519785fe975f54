// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/application/services"
	"github.com/reglet-dev/userprofiles/internal/domain/repositories"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/apiclient"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/audit"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/config"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/output"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/prompt"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/server"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/validation"
	"github.com/reglet-dev/userprofiles/internal/version"
)

// Container holds all application dependencies.
type Container struct {
	cfg              *config.Config
	logger           *slog.Logger
	client           *apiclient.Client
	tracker          *audit.Tracker
	userList         *services.UserList
	editor           *services.Editor
	userService      *services.UserService
	formatterFactory *output.FormatterFactory
}

// Options configure the container.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// HTTPClient replaces the API client's transport (tests).
	HTTPClient *http.Client
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	cfg := opts.Config

	tracker := audit.NewTracker(cfg.Audit.Enabled)

	clientOpts := []apiclient.Option{apiclient.WithLogger(opts.Logger)}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(opts.HTTPClient))
	}
	client, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.ResolveEndpoint(),
		UserAgent: version.Get().UserAgent(),
		Headers:   tracker.Headers(),
		Timeout:   cfg.API.Timeout,
	}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	if tracker.Enabled() {
		opts.Logger.Debug("audit headers enabled",
			"session", tracker.SessionID().String(), "view", tracker.ViewID().String())
	}

	// The list is the refresher the editor notifies after each create.
	userList := services.NewUserList(client, opts.Logger)
	editor := services.NewEditor(client, userList, opts.Logger)

	return &Container{
		cfg:              cfg,
		logger:           opts.Logger,
		client:           client,
		tracker:          tracker,
		userList:         userList,
		editor:           editor,
		userService:      services.NewUserService(client, opts.Logger),
		formatterFactory: output.NewFormatterFactory(),
	}, nil
}

// Config returns the resolved configuration.
func (c *Container) Config() *config.Config {
	return c.cfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// UserAPI returns the users API client.
func (c *Container) UserAPI() ports.UserAPI {
	return c.client
}

// Endpoint returns the API base URL in use.
func (c *Container) Endpoint() string {
	return c.client.BaseURL()
}

// AuditTracker returns the audit tracker.
func (c *Container) AuditTracker() *audit.Tracker {
	return c.tracker
}

// UserList returns the user list use case.
func (c *Container) UserList() *services.UserList {
	return c.userList
}

// Editor returns the draft editor use case.
func (c *Container) Editor() *services.Editor {
	return c.editor
}

// UserService returns the single-user use case.
func (c *Container) UserService() *services.UserService {
	return c.userService
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// Prompter returns an interactive field prompter bound to in and out.
func (c *Container) Prompter(in io.Reader, out io.Writer, accessible bool) ports.FieldPrompter {
	return prompt.NewHuhPrompter(prompt.Options{Input: in, Output: out, Accessible: accessible})
}

// NewServer builds the demo backend over repo using the server configuration.
func (c *Container) NewServer(repo repositories.UserRepository) (*server.Server, error) {
	validator, err := validation.NewRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create request validator: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return server.New(repo, validator, server.Options{
		Registry:       registry,
		Logger:         c.logger,
		Addr:           c.cfg.Server.Addr,
		BasePath:       c.cfg.Server.BasePath,
		AllowedOrigins: c.cfg.Server.AllowedOrigins,
		RateLimit:      c.cfg.Server.RateLimit,
		Burst:          c.cfg.Server.Burst,
	}), nil
}
