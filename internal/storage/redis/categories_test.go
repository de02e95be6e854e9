package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
	"job-catalog/internal/repository/mocks"
)

func TestCachedCategories_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("read through then hit", func(t *testing.T) {
		cache, mr := newTestCache(t)
		repo := new(mocks.MockCategoryRepository)
		cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

		repo.On("FindByID", mock.Anything, int64(5)).
			Return(&models.Category{ID: 5, Name: "Ventas"}, nil).Once()

		first, err := cached.FindByID(ctx, 5)
		require.NoError(t, err)
		second, err := cached.FindByID(ctx, 5)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.True(t, mr.Exists(CategoryKey(5)))
		assert.Equal(t, time.Minute, mr.TTL(CategoryKey(5)))
		repo.AssertExpectations(t)
	})

	t.Run("absent row not cached", func(t *testing.T) {
		cache, mr := newTestCache(t)
		repo := new(mocks.MockCategoryRepository)
		cached := NewCachedCategories(repo, cache, 0, zap.NewNop())

		repo.On("FindByID", mock.Anything, int64(9)).Return(nil, nil).Twice()

		for i := 0; i < 2; i++ {
			c, err := cached.FindByID(ctx, 9)
			require.NoError(t, err)
			assert.Nil(t, c)
		}

		assert.False(t, mr.Exists(CategoryKey(9)))
		repo.AssertExpectations(t)
	})

	t.Run("redis down falls through", func(t *testing.T) {
		cache, mr := newTestCache(t)
		repo := new(mocks.MockCategoryRepository)
		core, logs := observer.New(zap.WarnLevel)
		cached := NewCachedCategories(repo, cache, time.Minute, zap.New(core))
		mr.SetError("ERR server unavailable")

		repo.On("FindByID", mock.Anything, int64(5)).
			Return(&models.Category{ID: 5, Name: "Ventas"}, nil).Once()

		c, err := cached.FindByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, "Ventas", c.Name)
		require.NotZero(t, logs.Len())
		for _, entry := range logs.All() {
			assert.Equal(t, "category_cache", entry.LoggerName)
		}
		repo.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		cache, _ := newTestCache(t)
		repo := new(mocks.MockCategoryRepository)
		cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

		repo.On("FindByID", mock.Anything, int64(5)).Return(nil, errors.New("boom")).Once()

		_, err := cached.FindByID(ctx, 5)
		assert.EqualError(t, err, "boom")
	})
}

func TestCachedCategories_SaveEvicts(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	repo := new(mocks.MockCategoryRepository)
	cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

	require.NoError(t, cache.Set(ctx, CategoryKey(2), models.Category{ID: 2, Name: "Old"}, time.Minute))

	updated := &models.Category{ID: 2, Name: "INGENIERIA DE SOFTWARE"}
	repo.On("Save", mock.Anything, updated).Return(updated, nil).Once()

	_, err := cached.Save(ctx, updated)

	require.NoError(t, err)
	assert.False(t, mr.Exists(CategoryKey(2)))
	repo.AssertExpectations(t)
}

func TestCachedCategories_SaveAllEvicts(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	repo := new(mocks.MockCategoryRepository)
	cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

	require.NoError(t, cache.Set(ctx, CategoryKey(1), models.Category{ID: 1}, time.Minute))
	require.NoError(t, cache.Set(ctx, CategoryKey(3), models.Category{ID: 3}, time.Minute))

	in := []models.Category{{ID: 1, Name: "A"}, {Name: "B"}}
	out := []models.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	repo.On("SaveAll", mock.Anything, in).Return(out, nil).Once()

	_, err := cached.SaveAll(ctx, in)

	require.NoError(t, err)
	assert.False(t, mr.Exists(CategoryKey(1)))
	assert.True(t, mr.Exists(CategoryKey(3)))
}

func TestCachedCategories_DeleteByID(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	repo := new(mocks.MockCategoryRepository)
	cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

	require.NoError(t, cache.Set(ctx, CategoryKey(4), models.Category{ID: 4}, time.Minute))

	repo.On("DeleteByID", mock.Anything, int64(4)).Return(repository.ErrReferenced).Once()
	err := cached.DeleteByID(ctx, 4)
	assert.ErrorIs(t, err, repository.ErrReferenced)
	assert.True(t, mr.Exists(CategoryKey(4)))

	repo.On("DeleteByID", mock.Anything, int64(4)).Return(nil).Once()
	require.NoError(t, cached.DeleteByID(ctx, 4))
	assert.False(t, mr.Exists(CategoryKey(4)))

	repo.AssertExpectations(t)
}

func TestCachedCategories_DeleteAllClears(t *testing.T) {
	ctx := context.Background()

	for _, batch := range []bool{false, true} {
		cache, mr := newTestCache(t)
		repo := new(mocks.MockCategoryRepository)
		cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

		require.NoError(t, cache.Set(ctx, CategoryKey(1), models.Category{ID: 1}, time.Minute))
		require.NoError(t, cache.Set(ctx, CategoryKey(2), models.Category{ID: 2}, time.Minute))

		if batch {
			repo.On("DeleteAllInBatch", mock.Anything).Return(nil).Once()
			require.NoError(t, cached.DeleteAllInBatch(ctx))
		} else {
			repo.On("DeleteAll", mock.Anything).Return(nil).Once()
			require.NoError(t, cached.DeleteAll(ctx))
		}

		assert.Empty(t, mr.Keys())
		repo.AssertExpectations(t)
	}
}

func TestCachedCategories_PassThrough(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	repo := new(mocks.MockCategoryRepository)
	cached := NewCachedCategories(repo, cache, time.Minute, zap.NewNop())

	repo.On("Count", mock.Anything).Return(int64(3), nil).Once()

	n, err := cached.Count(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	repo.AssertExpectations(t)
}
