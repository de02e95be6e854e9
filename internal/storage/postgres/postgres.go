package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Options tunes the connection pool. Zero values keep the defaults.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	logger *zap.Logger
}

func New(dsn string, opts Options, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, newEventReceiver(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(orDefault(opts.MaxOpenConns, 25))
	conn.SetMaxIdleConns(orDefault(opts.MaxIdleConns, 5))
	if opts.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   conn.NewSession(nil),
		logger: logger,
	}, nil
}

// NewWithDB wraps an already opened PostgreSQL handle.
func NewWithDB(db *sql.DB, logger *zap.Logger) *Store {
	conn := &dbr.Connection{
		DB:            db,
		Dialect:       dialect.PostgreSQL,
		EventReceiver: newEventReceiver(logger),
	}
	return &Store{
		conn:   conn,
		sess:   conn.NewSession(nil),
		logger: logger,
	}
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) BeginTx(ctx context.Context) (*dbr.Tx, error) {
	return s.sess.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
}

// Categories, JobPostings, Users and Profiles share the store's session.

func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{store: s}
}

func (s *Store) JobPostings() *JobPostingStore {
	return &JobPostingStore{store: s}
}

func (s *Store) Users() *UserStore {
	return &UserStore{store: s}
}

func (s *Store) Profiles() *ProfileStore {
	return &ProfileStore{store: s}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
