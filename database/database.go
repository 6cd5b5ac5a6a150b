package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var (
	// ErrFoodsTableMissing is returned by reads when the schema was never applied.
	ErrFoodsTableMissing = errors.New("foods table does not exist")

	// ErrSchemaNotFound is returned by InitSchema when the schema script is absent.
	ErrSchemaNotFound = errors.New("schema script not found")
)

// StoreExists reports whether the store file is already on disk.
// It must be called before InitDB, which creates the file.
func StoreExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func InitDB(dataSourceName string) (*sql.DB, error) {
	dsn := dataSourceName
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// write-ahead logging lets readers proceed while a form submission commits
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode on %s: %w", dataSourceName, err)
	}

	return db, nil
}

// InitSchema executes the schema script at schemaPath verbatim on a single
// connection. A transaction left open by a failing script is rolled back.
func InitSchema(ctx context.Context, db *sql.DB, schemaPath string) error {
	script, err := os.ReadFile(schemaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSchemaNotFound, schemaPath)
		}
		return fmt.Errorf("failed to read schema script %s: %w", schemaPath, err)
	}

	// no outer transaction: the script may carry its own BEGIN/COMMIT
	return withConn(ctx, db, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, string(script)); err != nil {
			execErr := fmt.Errorf("failed to execute schema script %s: %w", schemaPath, err)
			if _, rbErr := conn.ExecContext(ctx, "ROLLBACK"); rbErr != nil && !isNoActiveTx(rbErr) {
				return errors.Join(execErr, fmt.Errorf("failed to roll back schema script: %w", rbErr))
			}
			return execErr
		}
		return nil
	})
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on any error or panic.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// withConn borrows a single connection for the duration of fn.
func withConn(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

func isMissingTable(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrError && strings.Contains(sqliteErr.Error(), "no such table")
	}
	return false
}

func isNoActiveTx(err error) bool {
	return strings.Contains(err.Error(), "no transaction is active")
}
