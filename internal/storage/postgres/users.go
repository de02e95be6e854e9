package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

const (
	usersTable        = "users"
	userProfilesTable = "user_profiles"
)

var userColumns = []string{"id", "name", "email", "username", "password", "registered_at", "status"}

type UserStore struct {
	store *Store
}

var _ repository.UserRepository = (*UserStore)(nil)

func (r *UserStore) Save(ctx context.Context, u *models.User) (*models.User, error) {
	if err := prepareUser(u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("save user: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	id, err := saveUser(ctx, tx, u)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to save user",
				zap.Int64("user_id", u.ID),
				zap.Int64s("profile_ids", u.ProfileIDs()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save user: commit: %w", err)
	}
	u.ID = id

	r.store.logger.Info("user saved",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.Int("profiles", len(u.Profiles)),
	)

	return u, nil
}

func (r *UserStore) SaveAll(ctx context.Context, us []models.User) ([]models.User, error) {
	for i := range us {
		if err := prepareUser(&us[i]); err != nil {
			return nil, fmt.Errorf("save users: item %d: %w", i, err)
		}
	}

	tx, err := r.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("save users: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	ids := make([]int64, len(us))
	for i := range us {
		if ids[i], err = saveUser(ctx, tx, &us[i]); err != nil {
			r.store.logger.Error("failed to save users",
				zap.Int("item", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("save users: item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save users: commit: %w", err)
	}
	for i := range us {
		us[i].ID = ids[i]
	}

	r.store.logger.Info("users saved", zap.Int("count", len(us)))
	return us, nil
}

func prepareUser(u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now().UTC()
	}
	return u.HashPassword()
}

// saveUser writes the user row, then replaces its association rows. It returns
// the user id without touching u.ID; the caller assigns it after commit.
func saveUser(ctx context.Context, tx *dbr.Tx, u *models.User) (int64, error) {
	id := u.ID
	if id == 0 {
		query := `
			INSERT INTO users (name, email, username, password, registered_at, status)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`
		err := tx.
			SelectBySql(query, u.Name, u.Email, u.Username, u.Password, u.RegisteredAt, u.Status).
			LoadOneContext(ctx, &id)
		if err != nil {
			return 0, translate(err)
		}
	} else {
		result, err := tx.
			Update(usersTable).
			Set("name", u.Name).
			Set("email", u.Email).
			Set("username", u.Username).
			Set("password", u.Password).
			Set("registered_at", u.RegisteredAt).
			Set("status", u.Status).
			Where("id = ?", id).
			ExecContext(ctx)
		if err != nil {
			return 0, translate(err)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			return 0, repository.ErrNotFound
		}
	}

	if err := replaceUserProfiles(ctx, tx, id, u.ProfileIDs()); err != nil {
		return 0, err
	}
	return id, nil
}

func replaceUserProfiles(ctx context.Context, tx *dbr.Tx, userID int64, profileIDs []int64) error {
	_, err := tx.
		DeleteFrom(userProfilesTable).
		Where("user_id = ?", userID).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("clear user profiles: %w", err)
	}

	if len(profileIDs) == 0 {
		return nil
	}

	stmt := tx.
		InsertInto(userProfilesTable).
		Columns("user_id", "profile_id")

	seen := make(map[int64]struct{}, len(profileIDs))
	for _, id := range profileIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		stmt.Values(userID, id)
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("insert user profiles: %w", translate(err))
	}
	return nil
}

func (r *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	err := r.store.sess.
		Select(userColumns...).
		From(usersTable).
		Where("id = ?", id).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		r.store.logger.Error("failed to get user",
			zap.Int64("user_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}

	users := []models.User{user}
	if err := r.attachProfiles(ctx, users); err != nil {
		return nil, err
	}

	return &users[0], nil
}

func (r *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)

	_, err := r.store.sess.
		Select(userColumns...).
		From(usersTable).
		OrderAsc("id").
		LoadContext(ctx, &users)

	if err != nil {
		r.store.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	if err := r.attachProfiles(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

type userProfileRow struct {
	UserID int64  `db:"user_id"`
	ID     int64  `db:"id"`
	Name   string `db:"name"`
}

// attachProfiles loads the profiles of every user with one join query.
func (r *UserStore) attachProfiles(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	query := `
		SELECT up.user_id, p.id, p.name
		FROM user_profiles up
		JOIN profiles p ON p.id = up.profile_id
		WHERE up.user_id = ANY(?)
		ORDER BY up.user_id, p.id
	`

	var rows []userProfileRow
	if _, err := r.store.sess.SelectBySql(query, pq.Array(ids)).LoadContext(ctx, &rows); err != nil {
		r.store.logger.Error("failed to load user profiles",
			zap.Int("users", len(users)),
			zap.Error(err),
		)
		return fmt.Errorf("load user profiles: %w", err)
	}

	byUser := make(map[int64][]models.Profile, len(users))
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], models.Profile{ID: row.ID, Name: row.Name})
	}
	for i := range users {
		users[i].Profiles = byUser[users[i].ID]
	}

	return nil
}

func (r *UserStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.store.sess, usersTable, id)
	if err != nil {
		r.store.logger.Error("failed to check user existence",
			zap.Int64("user_id", id),
			zap.Error(err),
		)
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

func (r *UserStore) Count(ctx context.Context) (int64, error) {
	count, err := countRows(ctx, r.store.sess, usersTable)
	if err != nil {
		r.store.logger.Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *UserStore) DeleteByID(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.store.sess, usersTable, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.store.logger.Error("failed to delete user",
				zap.Int64("user_id", id),
				zap.Error(err),
			)
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	r.store.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
