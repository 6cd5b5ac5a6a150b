package database

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/whattoeat/models"
)

// ListFoods returns every food ordered by name. When the foods table has not
// been created yet it returns an empty list together with ErrFoodsTableMissing.
func ListFoods(ctx context.Context, db *sql.DB) ([]models.Food, error) {
	queryBuilder := psql.Select("id", "name").
		From("foods").
		OrderBy("name ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListFoods: %w", err)
	}

	foods := []models.Food{}
	err = withConn(ctx, db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			if isMissingTable(err) {
				return ErrFoodsTableMissing
			}
			return fmt.Errorf("failed to execute ListFoods query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var f models.Food
			if err := rows.Scan(&f.ID, &f.Name); err != nil {
				return fmt.Errorf("failed to scan food row: %w", err)
			}
			foods = append(foods, f)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating food rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return []models.Food{}, err
	}

	return foods, nil
}

// InsertFoodIfAbsent stores name unless a food with exactly that name exists.
// It reports whether a row was inserted.
func InsertFoodIfAbsent(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var inserted bool
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		var err error
		inserted, err = insertFoodIfAbsent(ctx, tx, name)
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func insertFoodIfAbsent(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	selectBuilder := psql.Select().
		Column("?", name).
		Where(sq.Expr("NOT EXISTS (SELECT 1 FROM foods WHERE name = ?)", name))

	queryBuilder := psql.Insert("foods").
		Columns("name").
		Select(selectBuilder)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build SQL for InsertFoodIfAbsent: %w", err)
	}

	result, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert food '%s': %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for food '%s': %w", name, err)
	}
	return affected > 0, nil
}

// DeleteFoodsByIDs removes every food whose id is in ids and returns how many
// rows were deleted. An empty ids slice does not touch the store.
func DeleteFoodsByIDs(ctx context.Context, db *sql.DB, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	queryBuilder := psql.Delete("foods").Where(sq.Eq{"id": ids})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for DeleteFoodsByIDs: %w", err)
	}

	var deleted int64
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("failed to delete foods %v: %w", ids, err)
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected for delete: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// SeedFoods inserts names only when the foods table is empty and returns the
// number of rows added.
func SeedFoods(ctx context.Context, db *sql.DB, names []string) (int, error) {
	countSQL, countArgs, err := psql.Select("COUNT(*)").From("foods").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for SeedFoods: %w", err)
	}

	added := 0
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		var existing int64
		if err := tx.QueryRowContext(ctx, countSQL, countArgs...).Scan(&existing); err != nil {
			if isMissingTable(err) {
				return ErrFoodsTableMissing
			}
			return fmt.Errorf("failed to count foods: %w", err)
		}
		if existing > 0 {
			return nil
		}

		for _, name := range names {
			inserted, err := insertFoodIfAbsent(ctx, tx, name)
			if err != nil {
				return err
			}
			if inserted {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
