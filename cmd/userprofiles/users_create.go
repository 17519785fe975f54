package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/application/services"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
)

type createOptions struct {
	CommonOptions
	name        string
	email       string
	fields      []string
	interactive bool
	accessible  bool
}

func newUsersCreateCmd() *cobra.Command {
	opts := createOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with profile fields",
		Example: `  userprofiles users create --name "Taro Tanaka" --email tanaka@example.com \
      --field Hobby:text:reading --field Age:number:30 --field Sex:gender:male
  userprofiles users create --interactive`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			if err := opts.ValidateFlags(); err != nil {
				return err
			}
			inputs, err := parseFieldFlags(opts.fields)
			if err != nil {
				return err
			}

			c, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			editor := ctx.Container.Editor()
			editor.SetName(opts.name)
			editor.SetEmail(opts.email)

			for i, in := range inputs {
				if err := editor.AddField(in); err != nil {
					return fmt.Errorf("--field %q: %s", opts.fields[i], editor.Err())
				}
			}

			if opts.interactive {
				prompter := ctx.Container.Prompter(cmd.InOrStdin(), cmd.ErrOrStderr(), opts.accessible)
				if err := services.CollectIdentity(c, editor, prompter); err != nil {
					return err
				}
				report := func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg) }
				if _, err := services.CollectFields(c, editor, prompter, report); err != nil {
					return err
				}
			}

			user, err := editor.Submit(c)
			if err != nil {
				return err
			}
			if user == nil {
				return nil
			}
			return opts.render(cmd, ctx.Container.FormatterFactory(), []entities.User{*user})
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringVar(&opts.name, "name", "", "User name")
	cmd.Flags().StringVar(&opts.email, "email", "", "User email")
	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, fieldFlagUsage)
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for missing values and further fields")
	cmd.Flags().BoolVar(&opts.accessible, "accessible", false, "Use plain line-based prompts")
	return cmd
}
