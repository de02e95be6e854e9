package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

const profilesTable = "profiles"

type ProfileStore struct {
	store *Store
}

var _ repository.ProfileRepository = (*ProfileStore)(nil)

func (r *ProfileStore) Save(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	id, err := saveProfile(ctx, r.store.sess, p)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to save profile",
				zap.Int64("profile_id", p.ID),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("save profile: %w", err)
	}
	p.ID = id

	return p, nil
}

func (r *ProfileStore) SaveAll(ctx context.Context, ps []models.Profile) ([]models.Profile, error) {
	for i := range ps {
		if err := ps[i].Validate(); err != nil {
			return nil, fmt.Errorf("save profiles: item %d: %w", i, err)
		}
	}

	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("save profiles: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	ids := make([]int64, len(ps))
	for i := range ps {
		if ids[i], err = saveProfile(ctx, tx, &ps[i]); err != nil {
			r.store.logger.Error("failed to save profiles",
				zap.Int("item", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("save profiles: item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save profiles: commit: %w", err)
	}
	for i := range ps {
		ps[i].ID = ids[i]
	}

	r.store.logger.Info("profiles saved", zap.Int("count", len(ps)))
	return ps, nil
}

func saveProfile(ctx context.Context, run dbr.SessionRunner, p *models.Profile) (int64, error) {
	if p.ID == 0 {
		var id int64
		err := run.
			SelectBySql(`INSERT INTO profiles (name) VALUES (?) RETURNING id`, p.Name).
			LoadOneContext(ctx, &id)
		return id, err
	}

	result, err := run.
		Update(profilesTable).
		Set("name", p.Name).
		Where("id = ?", p.ID).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, repository.ErrNotFound
	}
	return p.ID, nil
}

func (r *ProfileStore) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile

	err := r.store.sess.
		Select("id", "name").
		From(profilesTable).
		Where("id = ?", id).
		LoadOneContext(ctx, &profile)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		r.store.logger.Error("failed to get profile",
			zap.Int64("profile_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

func (r *ProfileStore) FindAll(ctx context.Context) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)

	_, err := r.store.sess.
		Select("id", "name").
		From(profilesTable).
		OrderAsc("id").
		LoadContext(ctx, &profiles)

	if err != nil {
		r.store.logger.Error("failed to list profiles", zap.Error(err))
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (r *ProfileStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.store.sess, profilesTable, id)
	if err != nil {
		r.store.logger.Error("failed to check profile existence",
			zap.Int64("profile_id", id),
			zap.Error(err),
		)
		return false, fmt.Errorf("profile exists: %w", err)
	}
	return exists, nil
}

func (r *ProfileStore) Count(ctx context.Context) (int64, error) {
	count, err := countRows(ctx, r.store.sess, profilesTable)
	if err != nil {
		r.store.logger.Error("failed to count profiles", zap.Error(err))
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}

// DeleteByID also drops the profile from every user holding it (ON DELETE CASCADE).
func (r *ProfileStore) DeleteByID(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.store.sess, profilesTable, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to delete profile",
				zap.Int64("profile_id", id),
				zap.Error(err),
			)
		}
		return fmt.Errorf("delete profile %d: %w", id, err)
	}

	r.store.logger.Info("profile deleted", zap.Int64("profile_id", id))
	return nil
}
