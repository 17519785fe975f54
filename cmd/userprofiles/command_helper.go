package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/userprofiles/internal/infrastructure/config"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/container"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Config    *config.Config
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization:
// configuration resolution, logger lookup and dependency injection.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		c, err := container.New(container.Options{
			Config: cfg,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return handler(&CommandContext{
			Container: c,
			Config:    cfg,
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}
