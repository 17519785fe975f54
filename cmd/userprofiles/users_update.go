package main

import (
	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	"github.com/reglet-dev/userprofiles/internal/application/services"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

type updateOptions struct {
	CommonOptions
	name        string
	email       string
	fields      []string
	clearFields bool
}

// command builds the update from the flags that were actually set.
func (o *updateOptions) command(cmd *cobra.Command) (services.UpdateUserCommand, error) {
	var uc services.UpdateUserCommand
	if cmd.Flags().Changed("name") {
		uc.Name = &o.name
	}
	if cmd.Flags().Changed("email") {
		uc.Email = &o.email
	}

	switch {
	case len(o.fields) > 0:
		inputs, err := parseFieldFlags(o.fields)
		if err != nil {
			return uc, err
		}
		uc.Fields = &inputs
	case o.clearFields:
		empty := []dto.FieldInput{}
		uc.Fields = &empty
	}
	return uc, nil
}

func newUsersUpdateCmd() *cobra.Command {
	opts := updateOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user; --field replaces the whole field list",
		Example: `  userprofiles users update 1 --email taro@example.org
  userprofiles users update 1 --field Job:text:Engineer --field Age:number:31
  userprofiles users update 1 --clear-fields`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			if err := opts.ValidateFlags(); err != nil {
				return err
			}
			id, err := values.ParseUserID(args[0])
			if err != nil {
				return err
			}
			uc, err := opts.command(cmd)
			if err != nil {
				return err
			}

			c, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			user, err := ctx.Container.UserService().Update(c, id, uc)
			if err != nil {
				return err
			}
			return opts.render(cmd, ctx.Container.FormatterFactory(), []entities.User{*user})
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringVar(&opts.name, "name", "", "New user name")
	cmd.Flags().StringVar(&opts.email, "email", "", "New user email")
	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, fieldFlagUsage)
	cmd.Flags().BoolVar(&opts.clearFields, "clear-fields", false, "Remove every profile field")
	cmd.MarkFlagsMutuallyExclusive("field", "clear-fields")
	return cmd
}
