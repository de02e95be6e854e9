package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

var postingRowColumns = []string{
	"id", "name", "description", "detail", "posting_date",
	"salary", "status", "featured", "image", "category_id",
}

func postingRows(now time.Time, rows ...[]any) *sqlmock.Rows {
	r := sqlmock.NewRows(postingRowColumns)
	for _, row := range rows {
		// id, name, salary, status, featured, category_id
		r.AddRow(row[0], row[1], "", "", now, row[2], row[3], row[4], "", row[5])
	}
	return r
}

func expectCategories(mock sqlmock.Sqlmock, rows ...[]any) {
	r := sqlmock.NewRows(categoryRowColumns)
	for _, row := range rows {
		values := make([]driver.Value, len(row))
		for i, v := range row {
			values[i] = v
		}
		r.AddRow(values...)
	}
	mock.ExpectQuery(`SELECT (.+) FROM (.*)categories(.*) WHERE (.*)id = ANY`).WillReturnRows(r)
}

func TestJobPostingStore_FindByStatusIn(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("matching statuses only", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) WHERE (.*)status(.*) IN \((.*)Eliminada(.*)Creada(.*)\)`).
			WillReturnRows(postingRows(now,
				[]any{1, "Contador", "8500.00", models.StatusCreated, 0, 3},
				[]any{4, "Chofer", "6000.00", models.StatusDeleted, 0, 3},
			))
		expectCategories(mock, []any{3, "Contabilidad", ""})

		ps, err := store.JobPostings().FindByStatusIn(ctx, []string{models.StatusDeleted, models.StatusCreated})

		require.NoError(t, err)
		require.Len(t, ps, 2)
		for _, p := range ps {
			assert.Contains(t, []string{models.StatusCreated, models.StatusDeleted}, p.Status)
			require.NotNil(t, p.Category)
			assert.Equal(t, "Contabilidad", p.Category.Name)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set issues no query", func(t *testing.T) {
		store, mock := newMockStore(t)

		ps, err := store.JobPostings().FindByStatusIn(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, ps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJobPostingStore_FindBySalaryBetweenOrderBySalaryDesc(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) WHERE (.*)salary(.*) >= (.*)7000(.*)salary(.*) <= (.*)14000(.*) ORDER BY salary DESC`).
		WillReturnRows(postingRows(now,
			[]any{2, "Arquitecto", "14000.00", models.StatusApproved, 1, 1},
			[]any{5, "Ingeniero", "9000.50", models.StatusApproved, 0, 1},
			[]any{3, "Analista", "7000.00", models.StatusCreated, 0, 2},
		))
	expectCategories(mock, []any{1, "Arquitectura", ""}, []any{2, "Sistemas", ""})

	ps, err := store.JobPostings().FindBySalaryBetweenOrderBySalaryDesc(ctx,
		decimal.NewFromInt(7000), decimal.NewFromInt(14000))

	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.True(t, ps[0].Salary.Equal(decimal.NewFromInt(14000)))
	assert.True(t, ps[1].Salary.Equal(decimal.RequireFromString("9000.50")))
	for i := 1; i < len(ps); i++ {
		assert.True(t, ps[i-1].Salary.GreaterThan(ps[i].Salary))
	}
	assert.Equal(t, "Sistemas", ps[2].Category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostingStore_FindByFeaturedAndStatusOrderByIDDesc(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) WHERE (.*)featured(.*) = 1(.*)status(.*) = 'Aprobada'(.*) ORDER BY id DESC`).
		WillReturnRows(postingRows(now,
			[]any{9, "Gerente", "20000.00", models.StatusApproved, 1, 4},
			[]any{6, "Diseñador", "12000.00", models.StatusApproved, 1, 4},
		))
	expectCategories(mock, []any{4, "Diseño", ""})

	ps, err := store.JobPostings().FindByFeaturedAndStatusOrderByIDDesc(ctx, 1, models.StatusApproved)

	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Greater(t, ps[0].ID, ps[1].ID)
	for _, p := range ps {
		assert.Equal(t, 1, p.Featured)
		assert.Equal(t, models.StatusApproved, p.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostingStore_FindByStatus(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) WHERE (.*)status(.*) = 'Aprobada'`).
		WillReturnRows(sqlmock.NewRows(postingRowColumns))

	ps, err := store.JobPostings().FindByStatus(ctx, models.StatusApproved)

	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostingStore_Save(t *testing.T) {
	ctx := context.Background()

	newPosting := func() *models.JobPosting {
		p := &models.JobPosting{
			Name:        "Profesor de Matemáticas",
			Description: "Las características para el puesto",
			Detail:      "<h1>Los requisitos para Profesor de Matematicas</h1>",
			Salary:      decimal.NewFromInt(5000),
			Status:      models.StatusApproved,
			Image:       "escuela.png",
		}
		p.SetCategory(&models.Category{ID: 15})
		return p
	}

	t.Run("insert", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`INSERT INTO job_postings (.+) RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

		p, err := store.JobPostings().Save(ctx, newPosting())

		require.NoError(t, err)
		assert.Equal(t, int64(31), p.ID)
		assert.False(t, p.Date.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing category", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`INSERT INTO job_postings`).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "job_postings_category_id_fkey"})

		_, err := store.JobPostings().Save(ctx, newPosting())

		assert.ErrorIs(t, err, repository.ErrReferenced)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		store, mock := newMockStore(t)

		p := newPosting()
		p.Salary = decimal.NewFromInt(-1)
		_, err := store.JobPostings().Save(ctx, p)

		assert.ErrorIs(t, err, models.ErrNegativeSalary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJobPostingStore_FindByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) WHERE (.*)id = 31`).
		WillReturnRows(postingRows(now, []any{31, "Profesor", "5000.00", models.StatusApproved, 0, 15}))
	expectCategories(mock, []any{15, "Educación", "Docencia"})

	p, err := store.JobPostings().FindByID(ctx, 31)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(15), p.CategoryID)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Educación", p.Category.Name)

	mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) WHERE (.*)id = 32`).
		WillReturnRows(sqlmock.NewRows(postingRowColumns))

	missing, err := store.JobPostings().FindByID(ctx, 32)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostingStore_FindPage(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM (.*)job_postings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT (.+) FROM (.*)job_postings(.*) ORDER BY salary DESC(.*)LIMIT 2(.*)OFFSET 2`).
		WillReturnRows(postingRows(now, []any{3, "Analista", "7000.00", models.StatusCreated, 0, 2}))
	expectCategories(mock, []any{2, "Sistemas", ""})

	page, err := store.JobPostings().FindPage(ctx, repository.PageOf(1, 2, repository.SortBy("salary").Descending()))

	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, 2, page.TotalPages())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostingStore_DeleteAllInBatch(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec("^DELETE FROM (.*)job_postings(.?)$").
		WillReturnResult(sqlmock.NewResult(0, 10))

	require.NoError(t, store.JobPostings().DeleteAllInBatch(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
