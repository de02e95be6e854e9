package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

type MockJobPostingRepository struct {
	mock.Mock
}

var _ repository.JobPostingRepository = (*MockJobPostingRepository)(nil)

func (m *MockJobPostingRepository) postings(args mock.Arguments) ([]models.JobPosting, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepository) Save(ctx context.Context, p *models.JobPosting) (*models.JobPosting, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepository) SaveAll(ctx context.Context, ps []models.JobPosting) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, ps))
}

func (m *MockJobPostingRepository) FindByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepository) FindAll(ctx context.Context) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx))
}

func (m *MockJobPostingRepository) FindAllSorted(ctx context.Context, sort repository.Sort) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, sort))
}

func (m *MockJobPostingRepository) FindPage(ctx context.Context, req repository.PageRequest) (*repository.Page[models.JobPosting], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Page[models.JobPosting]), args.Error(1)
}

func (m *MockJobPostingRepository) FindAllByID(ctx context.Context, ids []int64) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, ids))
}

func (m *MockJobPostingRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobPostingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobPostingRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobPostingRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockJobPostingRepository) DeleteAllInBatch(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockJobPostingRepository) FindByStatusIn(ctx context.Context, statuses []string) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, statuses))
}

func (m *MockJobPostingRepository) FindBySalaryBetweenOrderBySalaryDesc(ctx context.Context, low, high decimal.Decimal) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, low, high))
}

func (m *MockJobPostingRepository) FindByFeaturedAndStatusOrderByIDDesc(ctx context.Context, featured int, status string) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, featured, status))
}

func (m *MockJobPostingRepository) FindByStatus(ctx context.Context, status string) ([]models.JobPosting, error) {
	return m.postings(m.Called(ctx, status))
}
