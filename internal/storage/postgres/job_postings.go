package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

const jobPostingsTable = "job_postings"

var jobPostingColumns = []string{
	"id", "name", "description", "detail", "posting_date",
	"salary", "status", "featured", "image", "category_id",
}

var jobPostingSortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"date":     "posting_date",
	"salary":   "salary",
	"status":   "status",
	"featured": "featured",
	"category": "category_id",
}

type JobPostingStore struct {
	store *Store
}

var _ repository.JobPostingRepository = (*JobPostingStore)(nil)

func (r *JobPostingStore) Save(ctx context.Context, p *models.JobPosting) (*models.JobPosting, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("save job posting: %w", err)
	}

	id, err := saveJobPosting(ctx, r.store.sess, p)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to save job posting",
				zap.Int64("job_posting_id", p.ID),
				zap.Int64("category_id", p.CategoryID),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("save job posting: %w", err)
	}
	p.ID = id

	r.store.logger.Debug("job posting saved", zap.Int64("job_posting_id", p.ID))
	return p, nil
}

func (r *JobPostingStore) SaveAll(ctx context.Context, ps []models.JobPosting) ([]models.JobPosting, error) {
	for i := range ps {
		if err := ps[i].Validate(); err != nil {
			return nil, fmt.Errorf("save job postings: item %d: %w", i, err)
		}
	}

	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("save job postings: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	ids := make([]int64, len(ps))
	for i := range ps {
		if ids[i], err = saveJobPosting(ctx, tx, &ps[i]); err != nil {
			r.store.logger.Error("failed to save job postings",
				zap.Int("item", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("save job postings: item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save job postings: commit: %w", err)
	}
	for i := range ps {
		ps[i].ID = ids[i]
	}

	r.store.logger.Info("job postings saved", zap.Int("count", len(ps)))
	return ps, nil
}

// saveJobPosting returns the row id. The caller assigns it once the write is durable.
func saveJobPosting(ctx context.Context, run dbr.SessionRunner, p *models.JobPosting) (int64, error) {
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	if p.ID == 0 {
		var id int64
		query := `
			INSERT INTO job_postings (
				name, description, detail, posting_date, salary,
				status, featured, image, category_id
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`
		err := run.
			SelectBySql(query,
				p.Name,
				p.Description,
				p.Detail,
				p.Date,
				p.Salary,
				p.Status,
				p.Featured,
				p.Image,
				p.CategoryID,
			).
			LoadOneContext(ctx, &id)
		return id, translate(err)
	}

	result, err := run.
		Update(jobPostingsTable).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("detail", p.Detail).
		Set("posting_date", p.Date).
		Set("salary", p.Salary).
		Set("status", p.Status).
		Set("featured", p.Featured).
		Set("image", p.Image).
		Set("category_id", p.CategoryID).
		Where("id = ?", p.ID).
		ExecContext(ctx)
	if err != nil {
		return 0, translate(err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, repository.ErrNotFound
	}
	return p.ID, nil
}

func (r *JobPostingStore) FindByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	var posting models.JobPosting

	err := r.store.sess.
		Select(jobPostingColumns...).
		From(jobPostingsTable).
		Where("id = ?", id).
		LoadOneContext(ctx, &posting)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		r.store.logger.Error("failed to get job posting",
			zap.Int64("job_posting_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job posting: %w", err)
	}

	postings := []models.JobPosting{posting}
	if err := r.attachCategories(ctx, postings); err != nil {
		return nil, err
	}

	return &postings[0], nil
}

func (r *JobPostingStore) FindAll(ctx context.Context) ([]models.JobPosting, error) {
	return r.FindAllSorted(ctx, repository.SortBy("id"))
}

func (r *JobPostingStore) FindAllSorted(ctx context.Context, sort repository.Sort) ([]models.JobPosting, error) {
	stmt := r.selectPostings()
	if err := applySort(stmt, sort, jobPostingSortColumns); err != nil {
		return nil, err
	}
	return r.load(ctx, "list job postings", stmt, zap.Stringer("sort", sort))
}

func (r *JobPostingStore) FindPage(ctx context.Context, req repository.PageRequest) (*repository.Page[models.JobPosting], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sort := req.Sort
	if sort.IsUnsorted() {
		sort = repository.SortBy("id")
	}

	stmt := r.selectPostings()
	if err := applySort(stmt, sort, jobPostingSortColumns); err != nil {
		return nil, err
	}

	total, err := countRows(ctx, r.store.sess, jobPostingsTable)
	if err != nil {
		r.store.logger.Error("failed to count job postings", zap.Error(err))
		return nil, fmt.Errorf("count job postings: %w", err)
	}
	stmt.Limit(uint64(req.Size)).Offset(uint64(req.Offset()))

	postings, err := r.load(ctx, "get job postings page", stmt,
		zap.Int("page", req.Page),
		zap.Int("size", req.Size),
	)
	if err != nil {
		return nil, err
	}

	return repository.NewPage(postings, req, total), nil
}

func (r *JobPostingStore) FindAllByID(ctx context.Context, ids []int64) ([]models.JobPosting, error) {
	if len(ids) == 0 {
		return []models.JobPosting{}, nil
	}

	stmt := r.selectPostings().Where("id = ANY(?)", pq.Array(ids))
	return r.load(ctx, "get job postings by IDs", stmt, zap.Int("count", len(ids)))
}

func (r *JobPostingStore) FindByStatusIn(ctx context.Context, statuses []string) ([]models.JobPosting, error) {
	if len(statuses) == 0 {
		return []models.JobPosting{}, nil
	}

	stmt := r.selectPostings().
		Where(dbr.Eq("status", statuses)).
		OrderAsc("id")
	return r.load(ctx, "find job postings by statuses", stmt, zap.Strings("statuses", statuses))
}

func (r *JobPostingStore) FindBySalaryBetweenOrderBySalaryDesc(ctx context.Context, low, high decimal.Decimal) ([]models.JobPosting, error) {
	stmt := r.selectPostings().
		Where(dbr.And(
			dbr.Gte("salary", low),
			dbr.Lte("salary", high),
		)).
		OrderDesc("salary")
	return r.load(ctx, "find job postings by salary", stmt,
		zap.Stringer("low", low),
		zap.Stringer("high", high),
	)
}

func (r *JobPostingStore) FindByFeaturedAndStatusOrderByIDDesc(ctx context.Context, featured int, status string) ([]models.JobPosting, error) {
	stmt := r.selectPostings().
		Where(dbr.And(
			dbr.Eq("featured", featured),
			dbr.Eq("status", status),
		)).
		OrderDesc("id")
	return r.load(ctx, "find job postings by featured and status", stmt,
		zap.Int("featured", featured),
		zap.String("status", status),
	)
}

func (r *JobPostingStore) FindByStatus(ctx context.Context, status string) ([]models.JobPosting, error) {
	stmt := r.selectPostings().
		Where(dbr.Eq("status", status)).
		OrderAsc("id")
	return r.load(ctx, "find job postings by status", stmt, zap.String("status", status))
}

func (r *JobPostingStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.store.sess, jobPostingsTable, id)
	if err != nil {
		r.store.logger.Error("failed to check job posting existence",
			zap.Int64("job_posting_id", id),
			zap.Error(err),
		)
		return false, fmt.Errorf("job posting exists: %w", err)
	}
	return exists, nil
}

func (r *JobPostingStore) Count(ctx context.Context) (int64, error) {
	count, err := countRows(ctx, r.store.sess, jobPostingsTable)
	if err != nil {
		r.store.logger.Error("failed to count job postings", zap.Error(err))
		return 0, fmt.Errorf("count job postings: %w", err)
	}
	return count, nil
}

func (r *JobPostingStore) DeleteByID(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.store.sess, jobPostingsTable, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to delete job posting",
				zap.Int64("job_posting_id", id),
				zap.Error(err),
			)
		}
		return fmt.Errorf("delete job posting %d: %w", id, err)
	}

	r.store.logger.Info("job posting deleted", zap.Int64("job_posting_id", id))
	return nil
}

func (r *JobPostingStore) DeleteAll(ctx context.Context) error {
	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("delete job postings: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	count, err := deleteEachRow(ctx, tx, jobPostingsTable)
	if err != nil {
		r.store.logger.Error("failed to delete job postings", zap.Error(err))
		return fmt.Errorf("delete job postings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete job postings: commit: %w", err)
	}

	r.store.logger.Info("job postings deleted", zap.Int("count", count))
	return nil
}

func (r *JobPostingStore) DeleteAllInBatch(ctx context.Context) error {
	count, err := deleteAllInBatch(ctx, r.store.sess, jobPostingsTable)
	if err != nil {
		r.store.logger.Error("failed to batch delete job postings", zap.Error(err))
		return fmt.Errorf("batch delete job postings: %w", err)
	}

	r.store.logger.Info("job postings deleted in batch", zap.Int64("count", count))
	return nil
}

func (r *JobPostingStore) selectPostings() *dbr.SelectStmt {
	return r.store.sess.
		Select(jobPostingColumns...).
		From(jobPostingsTable)
}

// load runs stmt and attaches categories. op names the failure in logs and errors.
func (r *JobPostingStore) load(ctx context.Context, op string, stmt *dbr.SelectStmt, fields ...zap.Field) ([]models.JobPosting, error) {
	postings := make([]models.JobPosting, 0)

	if _, err := stmt.LoadContext(ctx, &postings); err != nil {
		r.store.logger.Error("failed to "+op, append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.attachCategories(ctx, postings); err != nil {
		return nil, err
	}

	return postings, nil
}

// attachCategories fills Category on every posting with one query.
func (r *JobPostingStore) attachCategories(ctx context.Context, postings []models.JobPosting) error {
	seen := make(map[int64]struct{}, len(postings))
	ids := make([]int64, 0, len(postings))
	for _, p := range postings {
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		ids = append(ids, p.CategoryID)
	}

	categories, err := findCategoriesByID(ctx, r.store.sess, ids)
	if err != nil {
		r.store.logger.Error("failed to load job posting categories",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return fmt.Errorf("load job posting categories: %w", err)
	}

	byID := make(map[int64]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range postings {
		postings[i].Category = byID[postings[i].CategoryID]
	}

	return nil
}
