package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camden-git/whattoeat/database"
)

func initDBCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "(Re)apply the schema script to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitDB(a.cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.InitSchema(cmd.Context(), db, a.cfg.SchemaPath); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			a.log.Info("database schema initialized",
				zap.String("database", a.cfg.DatabasePath),
				zap.String("schema", a.cfg.SchemaPath),
			)
			cmd.Println("Initialized the database.")
			return nil
		},
	}
}
