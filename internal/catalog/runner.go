// Package catalog drives the repositories through a fixed set of named
// operations and writes a plain-text report for each.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"job-catalog/internal/repository"
)

var ErrUnknownOperation = errors.New("unknown catalog operation")

// Operation runs one step and returns its report.
type Operation func(ctx context.Context) (string, error)

// Repositories bundles the stores the operations work on.
type Repositories struct {
	Categories  repository.CategoryRepository
	JobPostings repository.JobPostingRepository
	Users       repository.UserRepository
	Profiles    repository.ProfileRepository
}

type Runner struct {
	repos   Repositories
	out     io.Writer
	logger  *zap.Logger
	timeout time.Duration
	ops     map[string]Operation
}

func NewRunner(repos Repositories, out io.Writer, logger *zap.Logger, timeout time.Duration) *Runner {
	r := &Runner{
		repos:   repos,
		out:     out,
		logger:  logger.Named("catalog"),
		timeout: timeout,
	}
	r.ops = r.operations()
	return r
}

// Names lists every registered operation in lexical order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named operations in order. Unknown names are rejected
// before anything runs. The first failing operation stops the run.
func (r *Runner) Run(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, ok := r.ops[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownOperation, name)
		}
	}

	r.logger.Info("catalog run started", zap.Strings("operations", names))
	start := time.Now()

	for _, name := range names {
		op := chain(r.ops[name],
			Recovery(r.logger, name),
			Logging(r.logger, name),
			Timeout(r.timeout),
		)

		report, err := op(ctx)
		if err != nil {
			return fmt.Errorf("operation %s: %w", name, err)
		}

		if _, err := io.WriteString(r.out, report); err != nil {
			return fmt.Errorf("write report of %s: %w", name, err)
		}
	}

	r.logger.Info("catalog run finished",
		zap.Int("operations", len(names)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
