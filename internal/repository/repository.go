// Package repository defines the data access contracts of the catalog.
// Implementations live in subpackages of internal/storage.
package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"job-catalog/internal/models"
)

var (
	// ErrNotFound is returned when a write targets an id that does not exist.
	// Single-entity lookups report absence with a nil result instead.
	ErrNotFound = errors.New("entity not found")

	// ErrReferenced is returned when a write breaks a foreign key: the row is
	// still referenced, or it references a row that does not exist.
	ErrReferenced = errors.New("foreign key violation")

	ErrInvalidSort = errors.New("invalid sort property")
	ErrInvalidPage = errors.New("invalid page request")
)

// CategoryRepository is the full CRUD, sorting and paging contract for categories.
type CategoryRepository interface {
	// Save inserts c when c.ID is zero and assigns the generated id,
	// otherwise it updates the existing row.
	Save(ctx context.Context, c *models.Category) (*models.Category, error)
	SaveAll(ctx context.Context, cs []models.Category) ([]models.Category, error)

	// FindByID returns nil, nil when no category has the id.
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	FindAllSorted(ctx context.Context, sort Sort) ([]models.Category, error)
	FindPage(ctx context.Context, req PageRequest) (*Page[models.Category], error)
	FindAllByID(ctx context.Context, ids []int64) ([]models.Category, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	DeleteByID(ctx context.Context, id int64) error
	// DeleteAll removes every row with one statement per row.
	DeleteAll(ctx context.Context) error
	// DeleteAllInBatch removes every row with a single bulk statement.
	DeleteAllInBatch(ctx context.Context) error
}

// JobPostingRepository adds the derived queries of the catalog to the CRUD contract.
// Every read fills JobPosting.Category.
type JobPostingRepository interface {
	Save(ctx context.Context, p *models.JobPosting) (*models.JobPosting, error)
	SaveAll(ctx context.Context, ps []models.JobPosting) ([]models.JobPosting, error)

	FindByID(ctx context.Context, id int64) (*models.JobPosting, error)
	FindAll(ctx context.Context) ([]models.JobPosting, error)
	FindAllSorted(ctx context.Context, sort Sort) ([]models.JobPosting, error)
	FindPage(ctx context.Context, req PageRequest) (*Page[models.JobPosting], error)
	FindAllByID(ctx context.Context, ids []int64) ([]models.JobPosting, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	DeleteAllInBatch(ctx context.Context) error

	// FindByStatusIn returns postings whose status is one of statuses.
	FindByStatusIn(ctx context.Context, statuses []string) ([]models.JobPosting, error)
	// FindBySalaryBetweenOrderBySalaryDesc filters low <= salary <= high.
	FindBySalaryBetweenOrderBySalaryDesc(ctx context.Context, low, high decimal.Decimal) ([]models.JobPosting, error)
	FindByFeaturedAndStatusOrderByIDDesc(ctx context.Context, featured int, status string) ([]models.JobPosting, error)
	FindByStatus(ctx context.Context, status string) ([]models.JobPosting, error)
}

// UserRepository persists users together with their profile associations.
type UserRepository interface {
	// Save writes the user row and replaces its profile associations
	// with the ids in u.Profiles, in one transaction.
	Save(ctx context.Context, u *models.User) (*models.User, error)
	SaveAll(ctx context.Context, us []models.User) ([]models.User, error)
	// FindByID loads the user and its profiles; nil, nil when absent.
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	Save(ctx context.Context, p *models.Profile) (*models.Profile, error)
	SaveAll(ctx context.Context, ps []models.Profile) ([]models.Profile, error)
	FindByID(ctx context.Context, id int64) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}
