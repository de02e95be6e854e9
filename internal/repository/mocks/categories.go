package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

type MockCategoryRepository struct {
	mock.Mock
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Save(ctx context.Context, c *models.Category) (*models.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveAll(ctx context.Context, cs []models.Category) ([]models.Category, error) {
	args := m.Called(ctx, cs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllSorted(ctx context.Context, sort repository.Sort) ([]models.Category, error) {
	args := m.Called(ctx, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindPage(ctx context.Context, req repository.PageRequest) (*repository.Page[models.Category], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Page[models.Category]), args.Error(1)
}

func (m *MockCategoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCategoryRepository) DeleteAllInBatch(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
