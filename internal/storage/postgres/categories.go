package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

const categoriesTable = "categories"

var categoryColumns = []string{"id", "name", "description"}

var categorySortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
}

type CategoryStore struct {
	store *Store
}

var _ repository.CategoryRepository = (*CategoryStore)(nil)

func (r *CategoryStore) Save(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}

	id, err := saveCategory(ctx, r.store.sess, c)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to save category",
				zap.Int64("category_id", c.ID),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("save category: %w", err)
	}
	c.ID = id

	r.store.logger.Debug("category saved", zap.Int64("category_id", c.ID))
	return c, nil
}

func (r *CategoryStore) SaveAll(ctx context.Context, cs []models.Category) ([]models.Category, error) {
	for i := range cs {
		if err := cs[i].Validate(); err != nil {
			return nil, fmt.Errorf("save categories: item %d: %w", i, err)
		}
	}

	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("save categories: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	ids := make([]int64, len(cs))
	for i := range cs {
		if ids[i], err = saveCategory(ctx, tx, &cs[i]); err != nil {
			r.store.logger.Error("failed to save categories",
				zap.Int("item", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("save categories: item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save categories: commit: %w", err)
	}
	for i := range cs {
		cs[i].ID = ids[i]
	}

	r.store.logger.Info("categories saved", zap.Int("count", len(cs)))
	return cs, nil
}

// saveCategory returns the row id. The caller assigns it once the write is durable.
func saveCategory(ctx context.Context, run dbr.SessionRunner, c *models.Category) (int64, error) {
	if c.ID == 0 {
		var id int64
		query := `INSERT INTO categories (name, description) VALUES (?, ?) RETURNING id`
		err := run.
			SelectBySql(query, c.Name, c.Description).
			LoadOneContext(ctx, &id)
		return id, err
	}

	result, err := run.
		Update(categoriesTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Where("id = ?", c.ID).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, repository.ErrNotFound
	}
	return c.ID, nil
}

func (r *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category

	err := r.store.sess.
		Select(categoryColumns...).
		From(categoriesTable).
		Where("id = ?", id).
		LoadOneContext(ctx, &category)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		r.store.logger.Error("failed to get category",
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *CategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	return r.FindAllSorted(ctx, repository.SortBy("id"))
}

func (r *CategoryStore) FindAllSorted(ctx context.Context, sort repository.Sort) ([]models.Category, error) {
	stmt := r.store.sess.
		Select(categoryColumns...).
		From(categoriesTable)

	if err := applySort(stmt, sort, categorySortColumns); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0)
	if _, err := stmt.LoadContext(ctx, &categories); err != nil {
		r.store.logger.Error("failed to list categories",
			zap.Stringer("sort", sort),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryStore) FindPage(ctx context.Context, req repository.PageRequest) (*repository.Page[models.Category], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stmt := r.store.sess.
		Select(categoryColumns...).
		From(categoriesTable)

	sort := req.Sort
	if sort.IsUnsorted() {
		// stable pages need a total order
		sort = repository.SortBy("id")
	}
	if err := applySort(stmt, sort, categorySortColumns); err != nil {
		return nil, err
	}

	total, err := countRows(ctx, r.store.sess, categoriesTable)
	if err != nil {
		r.store.logger.Error("failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("count categories: %w", err)
	}

	categories := make([]models.Category, 0, req.Size)
	_, err = stmt.
		Limit(uint64(req.Size)).
		Offset(uint64(req.Offset())).
		LoadContext(ctx, &categories)
	if err != nil {
		r.store.logger.Error("failed to get categories page",
			zap.Int("page", req.Page),
			zap.Int("size", req.Size),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get categories page: %w", err)
	}

	return repository.NewPage(categories, req, total), nil
}

func (r *CategoryStore) FindAllByID(ctx context.Context, ids []int64) ([]models.Category, error) {
	categories, err := findCategoriesByID(ctx, r.store.sess, ids)
	if err != nil {
		r.store.logger.Error("failed to get categories by IDs",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get categories by IDs: %w", err)
	}
	return categories, nil
}

func findCategoriesByID(ctx context.Context, run dbr.SessionRunner, ids []int64) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	_, err := run.
		Select(categoryColumns...).
		From(categoriesTable).
		Where("id = ANY(?)", pq.Array(ids)).
		LoadContext(ctx, &categories)
	return categories, err
}

func (r *CategoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.store.sess, categoriesTable, id)
	if err != nil {
		r.store.logger.Error("failed to check category existence",
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return false, fmt.Errorf("category exists: %w", err)
	}
	return exists, nil
}

func (r *CategoryStore) Count(ctx context.Context) (int64, error) {
	count, err := countRows(ctx, r.store.sess, categoriesTable)
	if err != nil {
		r.store.logger.Error("failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

func (r *CategoryStore) DeleteByID(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.store.sess, categoriesTable, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to delete category",
				zap.Int64("category_id", id),
				zap.Error(err),
			)
		}
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	r.store.logger.Info("category deleted", zap.Int64("category_id", id))
	return nil
}

func (r *CategoryStore) DeleteAll(ctx context.Context) error {
	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("delete categories: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	count, err := deleteEachRow(ctx, tx, categoriesTable)
	if err != nil {
		r.store.logger.Error("failed to delete categories", zap.Error(err))
		return fmt.Errorf("delete categories: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete categories: commit: %w", err)
	}

	r.store.logger.Info("categories deleted", zap.Int("count", count))
	return nil
}

func (r *CategoryStore) DeleteAllInBatch(ctx context.Context) error {
	count, err := deleteAllInBatch(ctx, r.store.sess, categoriesTable)
	if err != nil {
		r.store.logger.Error("failed to batch delete categories", zap.Error(err))
		return fmt.Errorf("batch delete categories: %w", err)
	}

	r.store.logger.Info("categories deleted in batch", zap.Int64("count", count))
	return nil
}
