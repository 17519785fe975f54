package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
)

// CommonOptions contains flags shared across user commands.
type CommonOptions struct {
	// Output
	Format string

	// Execution
	Timeout time.Duration

	// Flags (bools grouped for alignment)
	NoColor bool
	Quiet   bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 30 * time.Second,
		Format:  "table",
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Timeout for the whole command (0 to disable)")
	cmd.Flags().StringVarP(&opts.Format, "format", "o", opts.Format,
		"Output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable colored table output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false,
		"Print nothing but errors")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}

	validFormats := map[string]bool{"table": true, "json": true, "yaml": true}
	if !validFormats[opts.Format] {
		return fmt.Errorf("invalid format: %s (valid: table, json, yaml)", opts.Format)
	}

	return nil
}

// render writes users in the selected format unless quiet.
func (opts *CommonOptions) render(cmd *cobra.Command, factory ports.OutputFormatterFactory, users []entities.User) error {
	if opts.Quiet {
		return nil
	}
	formatter, err := factory.Create(opts.Format, cmd.OutOrStdout(), ports.FormatterOptions{
		Indent:  true,
		NoColor: opts.NoColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(users)
}
