package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/userprofiles/internal/infrastructure/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "userprofiles",
	Short: "Manage users and their typed profile fields",
	Long: `userprofiles creates, lists, updates and deletes users through the users API.
Each user carries an ordered list of profile fields, each of which is text,
a number or a gender. The serve command runs a demo backend for the same API.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.userprofiles.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("endpoint", "", "users API base URL (ignored in development mode)")
	rootCmd.PersistentFlags().String("mode", "", "run mode: development pins the endpoint to "+config.DefaultEndpoint)

	_ = viper.BindPFlag("api.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
}

// initConfig loads configuration from the .env file, the config file and environment.
func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("ignoring .env file", "error", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".userprofiles")
	}

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		slog.Error("failed to read config file", "file", cfgFile, "error", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
