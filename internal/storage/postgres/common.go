package postgres

import (
	"context"
	"fmt"

	"github.com/gocraft/dbr/v2"

	"job-catalog/internal/repository"
)

// Helpers shared by the per-table stores. Table and column names come from
// constants in this package, never from callers.

func countRows(ctx context.Context, run dbr.SessionRunner, table string) (int64, error) {
	var count int64
	err := run.
		Select("COUNT(*)").
		From(table).
		LoadOneContext(ctx, &count)
	return count, err
}

func existsByID(ctx context.Context, run dbr.SessionRunner, table string, id int64) (bool, error) {
	var exists bool
	err := run.
		SelectBySql("SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = ?)", id).
		LoadOneContext(ctx, &exists)
	return exists, err
}

// deleteByID returns repository.ErrNotFound when no row had the id.
func deleteByID(ctx context.Context, run dbr.SessionRunner, table string, id int64) error {
	result, err := run.
		DeleteFrom(table).
		Where("id = ?", id).
		ExecContext(ctx)
	if err != nil {
		return translate(err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// deleteEachRow deletes the rows of table one statement at a time.
func deleteEachRow(ctx context.Context, tx *dbr.Tx, table string) (int, error) {
	var ids []int64
	if _, err := tx.Select("id").From(table).OrderAsc("id").LoadContext(ctx, &ids); err != nil {
		return 0, err
	}

	for _, id := range ids {
		if _, err := tx.DeleteFrom(table).Where("id = ?", id).ExecContext(ctx); err != nil {
			return 0, fmt.Errorf("delete %s %d: %w", table, id, translate(err))
		}
	}
	return len(ids), nil
}

func deleteAllInBatch(ctx context.Context, run dbr.SessionRunner, table string) (int64, error) {
	result, err := run.DeleteFrom(table).ExecContext(ctx)
	if err != nil {
		return 0, translate(err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

// applySort appends ORDER BY terms for sort, resolving each property through
// columns. Unknown properties fail with repository.ErrInvalidSort.
func applySort(stmt *dbr.SelectStmt, sort repository.Sort, columns map[string]string) error {
	for _, o := range sort.Orders {
		column, ok := columns[o.Property]
		if !ok {
			return fmt.Errorf("%w: %q", repository.ErrInvalidSort, o.Property)
		}
		stmt.OrderDir(column, o.Direction == repository.Asc)
	}
	return nil
}
