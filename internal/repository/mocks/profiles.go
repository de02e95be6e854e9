package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

type MockProfileRepository struct {
	mock.Mock
}

var _ repository.ProfileRepository = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) Save(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveAll(ctx context.Context, ps []models.Profile) ([]models.Profile, error) {
	args := m.Called(ctx, ps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
