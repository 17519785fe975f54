package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/infrastructure/apiclient"
)

func init() {
	rootCmd.AddCommand(newHelloCmd())
}

func newHelloCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Check that the users API is reachable and compatible",
		Example: `  userprofiles hello
  userprofiles hello --mode development`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			c, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			hello, err := ctx.Container.UserAPI().Hello(c)
			if err != nil {
				return fmt.Errorf("failed to reach %s: %w", ctx.Container.Endpoint(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, hello.Message)

			constraint := ctx.Config.API.VersionConstraint
			err = apiclient.CheckVersion(constraint, hello.APIVersion)
			switch {
			case errors.Is(err, apiclient.ErrNoAPIVersion):
				fmt.Fprintln(out, "API version: unknown")
				ctx.Logger.Warn("backend did not report its API version", "endpoint", ctx.Container.Endpoint())
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintf(out, "API version: %s (compatible with %s)\n", hello.APIVersion, constraint)
			return nil
		}),
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Timeout for the request (0 to disable)")
	return cmd
}
