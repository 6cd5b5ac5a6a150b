package cmd

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camden-git/whattoeat/database"
	"github.com/camden-git/whattoeat/handlers"
	"github.com/camden-git/whattoeat/models"
)

func serveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server, initializing a missing store first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVarP(&a.cfg.Port, "port", "p", a.cfg.Port, "HTTP listen port")
	return cmd
}

// prepareStore opens the store and, when the file did not exist yet, applies
// the schema and inserts the seed foods. Initialization problems are logged
// and leave the store as it is.
func prepareStore(ctx context.Context, a *app) (*sql.DB, error) {
	fresh := !database.StoreExists(a.cfg.DatabasePath)

	db, err := database.InitDB(a.cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if !fresh {
		a.log.Info("database file found, skipping initialization", zap.String("database", a.cfg.DatabasePath))
		return db, nil
	}

	a.log.Info("database file not found, initializing", zap.String("database", a.cfg.DatabasePath))
	if err := database.InitSchema(ctx, db, a.cfg.SchemaPath); err != nil {
		a.log.Error("failed to initialize database schema", zap.String("schema", a.cfg.SchemaPath), zap.Error(err))
		return db, nil
	}

	added, err := database.SeedFoods(ctx, db, models.DefaultSeedFoods)
	if err != nil {
		a.log.Error("failed to insert initial foods", zap.Error(err))
		return db, nil
	}
	a.log.Info("initial foods added", zap.Int("count", added))
	return db, nil
}

func serve(ctx context.Context, a *app) error {
	db, err := prepareStore(ctx, a)
	if err != nil {
		return err
	}
	defer db.Close()

	fh := handlers.NewFoodHandler(db, a.log)

	server := &http.Server{
		Addr:         net.JoinHostPort("", a.cfg.Port),
		Handler:      handlers.Router(fh, a.log, a.cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	a.log.Info("server listening", zap.String("addr", server.Addr))
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		a.log.Info("shutdown complete")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
