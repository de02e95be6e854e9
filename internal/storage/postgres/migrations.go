package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_categories",
		SQL: `CREATE TABLE IF NOT EXISTS categories (
  id          BIGINT       GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  name        VARCHAR(100) NOT NULL,
  description TEXT         NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_job_postings",
		SQL: `CREATE TABLE IF NOT EXISTS job_postings (
  id           BIGINT        GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  name         VARCHAR(200)  NOT NULL,
  description  TEXT          NOT NULL DEFAULT '',
  detail       TEXT          NOT NULL DEFAULT '',
  posting_date TIMESTAMPTZ   NOT NULL DEFAULT now(),
  salary       NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (salary >= 0),
  status       VARCHAR(20)   NOT NULL,
  featured     SMALLINT      NOT NULL DEFAULT 0 CHECK (featured IN (0, 1)),
  image        TEXT          NOT NULL DEFAULT '',
  category_id  BIGINT        NOT NULL REFERENCES categories (id) ON DELETE RESTRICT
);`,
	},
	{
		Name: "create_index_job_postings_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_postings_status ON job_postings (status);`,
	},
	{
		Name: "create_index_job_postings_salary",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_postings_salary ON job_postings (salary);`,
	},
	{
		Name: "create_index_job_postings_category_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_postings_category_id ON job_postings (category_id);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            BIGINT       GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  name          VARCHAR(100) NOT NULL,
  email         VARCHAR(255) NOT NULL,
  username      VARCHAR(50)  NOT NULL UNIQUE,
  password      TEXT         NOT NULL,
  registered_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
  status        SMALLINT     NOT NULL DEFAULT 1
);`,
	},
	{
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  id   BIGINT       GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  name VARCHAR(100) NOT NULL
);`,
	},
	{
		Name: "create_table_user_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS user_profiles (
  user_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  profile_id BIGINT NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
  PRIMARY KEY (user_id, profile_id)
);`,
	},
}

// Migrate creates the catalog schema unless the last table of the step list
// already exists. All steps run in one transaction.
func (s *Store) Migrate(ctx context.Context) error {
	start := time.Now()

	var exists bool
	err := s.sess.
		SelectBySql("SELECT to_regclass('public.user_profiles') IS NOT NULL").
		LoadOneContext(ctx, &exists)
	if err != nil {
		s.logger.Error("failed to check schema", zap.Error(err))
		return fmt.Errorf("check schema: %w", err)
	}

	if exists {
		s.logger.Info("schema already exists, skipping migration")
		return nil
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			s.logger.Error("migration step failed",
				zap.String("migration_step", step.Name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		s.logger.Debug("migration step applied",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}

	s.logger.Info("schema migrated",
		zap.Int("steps", len(steps)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
