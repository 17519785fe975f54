package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// usersCmd groups the user commands.
var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage users",
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(
		newUsersListCmd(),
		newUsersGetCmd(),
		newUsersCreateCmd(),
		newUsersUpdateCmd(),
		newUsersDeleteCmd(),
	)
}

func newUsersListCmd() *cobra.Command {
	opts := DefaultCommonOptions()
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with their profile fields",
		Example: `  userprofiles users list
  userprofiles users list --format json
  userprofiles users list --filter 'fieldCount > 0 && "Age" in fieldNames'`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			if err := opts.ValidateFlags(); err != nil {
				return err
			}
			c, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			list := ctx.Container.UserList()
			if err := list.Load(c); err != nil {
				return err
			}
			if hello := list.Hello(); hello != nil {
				ctx.Logger.Debug("backend greeting", "message", hello.Message, "api_version", hello.APIVersion)
			}

			users, err := list.Filter(filter)
			if err != nil {
				return err
			}
			return opts.render(cmd, ctx.Container.FormatterFactory(), users)
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "Boolean expression over name, email, id, fieldNames, fieldCount, fields")
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:     "get <id>",
		Short:   "Show one user",
		Example: `  userprofiles users get 1 --format yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			if err := opts.ValidateFlags(); err != nil {
				return err
			}
			id, err := values.ParseUserID(args[0])
			if err != nil {
				return err
			}
			c, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			user, err := ctx.Container.UserService().Get(c, id)
			if err != nil {
				return err
			}
			return opts.render(cmd, ctx.Container.FormatterFactory(), []entities.User{*user})
		}),
	}

	opts.RegisterFlags(cmd)
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a user",
		Example: `  userprofiles users delete 2`,
		Args:    cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			id, err := values.ParseUserID(args[0])
			if err != nil {
				return err
			}
			c, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			list := ctx.Container.UserList()
			if err := list.Delete(c, id); err != nil {
				return err
			}
			if !opts.Quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s. Users: %d total\n", id, len(list.Users()))
			}
			return nil
		}),
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Timeout for the whole command (0 to disable)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print nothing but errors")
	return cmd
}
