package cmd

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camden-git/whattoeat/config"
	"github.com/camden-git/whattoeat/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.Config
	log *zap.Logger

	// problems found while loading the environment, reported once logging is up
	envErr error
	cfgErr error
}

// RootCommand creates the root command. Running it without a subcommand serves HTTP.
func RootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "whattoeat",
		Short:         "Keep a list of foods and pick one at random",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfg.DatabasePath, "database", a.cfg.DatabasePath, "Path to the SQLite store file")
	rootCmd.PersistentFlags().StringVar(&a.cfg.SchemaPath, "schema", a.cfg.SchemaPath, "Path to the schema script")
	rootCmd.PersistentFlags().BoolVarP(&a.cfg.Debug, "debug", "d", a.cfg.Debug, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if a.log != nil {
			return nil
		}
		logger, err := logging.New(a.cfg.Debug)
		if err != nil {
			return err
		}
		a.log = logger

		if a.envErr != nil {
			a.log.Info("no .env file loaded", zap.Error(a.envErr))
		}
		if a.cfgErr != nil {
			a.log.Warn("invalid configuration values, using defaults", zap.Error(a.cfgErr))
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a.log != nil {
			_ = a.log.Sync()
		}
	}

	serveCmd := serveCommand(a)
	rootCmd.AddCommand(serveCmd, initDBCommand(a))
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

// Execute loads the environment, runs the CLI and returns the process exit code.
func Execute() int {
	envErr := godotenv.Load()
	cfg, cfgErr := config.LoadConfig()

	a := &app{cfg: &cfg, envErr: envErr, cfgErr: cfgErr}
	rootCmd := RootCommand(a)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if a.log != nil {
			a.log.Error("command failed", zap.Error(err))
			_ = a.log.Sync()
		} else {
			rootCmd.PrintErrln("Error:", err)
		}
		return 1
	}
	return 0
}
