package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/userprofiles/internal/infrastructure/persistence/memory"
	"github.com/reglet-dev/userprofiles/internal/testutil"
)

type serveOptions struct {
	addr     string
	seedFile string
	fake     int
	fakeSeed int64
	empty    bool
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}

// newRepository builds the store the backend starts from.
func (o *serveOptions) newRepository() (*memory.UserRepository, error) {
	repo := memory.NewUserRepository()

	switch {
	case o.seedFile != "":
		users, err := memory.LoadSeedFile(o.seedFile)
		if err != nil {
			return nil, err
		}
		repo.Seed(users)
	case !o.empty:
		repo.Seed(memory.DefaultUsers())
	}

	if o.fake > 0 {
		var gen *testutil.DataGenerator
		if o.fakeSeed != 0 {
			gen = testutil.NewDataGenerator(o.fakeSeed)
		} else {
			gen = testutil.NewDataGenerator()
		}
		repo.Seed(gen.Users(o.fake))
	}
	return repo, nil
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo users API backend",
		Example: `  userprofiles serve
  userprofiles serve --addr :8080 --seed users.yaml
  userprofiles serve --empty --fake 50`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			if opts.fake < 0 {
				return fmt.Errorf("--fake must not be negative")
			}
			if cmd.Flags().Changed("addr") {
				ctx.Config.Server.Addr = opts.addr
			}

			repo, err := opts.newRepository()
			if err != nil {
				return err
			}
			ctx.Logger.Info("users loaded", "count", repo.Len())

			srv, err := ctx.Container.NewServer(repo)
			if err != nil {
				return err
			}

			c, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(c)
		}),
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":3000", "Listen address (overrides server.addr)")
	cmd.Flags().StringVar(&opts.seedFile, "seed", "", "YAML or JSON file with the initial users")
	cmd.Flags().IntVar(&opts.fake, "fake", 0, "Add this many generated users")
	cmd.Flags().Int64Var(&opts.fakeSeed, "fake-seed", 0, "Seed for generated users (0 for random)")
	cmd.Flags().BoolVar(&opts.empty, "empty", false, "Start without the sample users")
	return cmd
}
