package redis

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

// CachedCategories serves FindByID from redis and falls through to the wrapped
// repository on a miss. Writes go to the repository first, then drop the
// affected keys. Cache failures are logged and never fail the call.
type CachedCategories struct {
	repository.CategoryRepository

	cache  *Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ repository.CategoryRepository = (*CachedCategories)(nil)

func NewCachedCategories(next repository.CategoryRepository, cache *Cache, ttl time.Duration, logger *zap.Logger) *CachedCategories {
	if ttl <= 0 {
		ttl = DefaultCategoryTTL
	}
	return &CachedCategories{
		CategoryRepository: next,
		cache:              cache,
		ttl:                ttl,
		logger:             logger.Named("category_cache"),
	}
}

func (c *CachedCategories) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	key := CategoryKey(id)

	var cached models.Category
	err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		c.logger.Debug("category cache hit", zap.Int64("category_id", id))
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("category cache read failed", zap.Int64("category_id", id), zap.Error(err))
	}

	category, err := c.CategoryRepository.FindByID(ctx, id)
	if err != nil || category == nil {
		return category, err
	}

	if err := c.cache.Set(ctx, key, category, c.ttl); err != nil {
		c.logger.Warn("category cache write failed", zap.Int64("category_id", id), zap.Error(err))
	}

	return category, nil
}

func (c *CachedCategories) Save(ctx context.Context, category *models.Category) (*models.Category, error) {
	saved, err := c.CategoryRepository.Save(ctx, category)
	if err != nil {
		return nil, err
	}
	c.evict(ctx, saved.ID)
	return saved, nil
}

func (c *CachedCategories) SaveAll(ctx context.Context, categories []models.Category) ([]models.Category, error) {
	saved, err := c.CategoryRepository.SaveAll(ctx, categories)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(saved))
	for i := range saved {
		ids[i] = saved[i].ID
	}
	c.evict(ctx, ids...)

	return saved, nil
}

func (c *CachedCategories) DeleteByID(ctx context.Context, id int64) error {
	if err := c.CategoryRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *CachedCategories) DeleteAll(ctx context.Context) error {
	if err := c.CategoryRepository.DeleteAll(ctx); err != nil {
		return err
	}
	c.clear(ctx)
	return nil
}

func (c *CachedCategories) DeleteAllInBatch(ctx context.Context) error {
	if err := c.CategoryRepository.DeleteAllInBatch(ctx); err != nil {
		return err
	}
	c.clear(ctx)
	return nil
}

func (c *CachedCategories) evict(ctx context.Context, ids ...int64) {
	if err := c.cache.Delete(ctx, categoryKeys(ids)...); err != nil {
		c.logger.Warn("category cache eviction failed", zap.Int64s("category_ids", ids), zap.Error(err))
	}
}

func (c *CachedCategories) clear(ctx context.Context) {
	n, err := c.cache.DeletePattern(ctx, categoryKeyPattern)
	if err != nil {
		c.logger.Warn("category cache clear failed", zap.Error(err))
		return
	}
	c.logger.Debug("category cache cleared", zap.Int("keys", n))
}
