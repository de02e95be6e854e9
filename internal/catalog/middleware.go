package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"job-catalog/internal/repository"
)

type Middleware func(Operation) Operation

// chain applies mws so that the first one is outermost.
func chain(op Operation, mws ...Middleware) Operation {
	for i := len(mws) - 1; i >= 0; i-- {
		op = mws[i](op)
	}
	return op
}

// Recovery turns a panic inside an operation into an error.
func Recovery(logger *zap.Logger, name string) Middleware {
	return func(next Operation) Operation {
		return func(ctx context.Context) (report string, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.String("operation", name),
						zap.Any("panic", rec),
						zap.Stack("stack"),
					)
					err = fmt.Errorf("panic: %v", rec)
				}
			}()

			return next(ctx)
		}
	}
}

// Logging records the outcome and duration of every operation.
func Logging(logger *zap.Logger, name string) Middleware {
	return func(next Operation) Operation {
		return func(ctx context.Context) (string, error) {
			start := time.Now()

			report, err := next(ctx)

			fields := []zap.Field{
				zap.String("operation", name),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Error("operation failed", append(fields, zap.Error(err))...)
			} else {
				logger.Info("operation completed", fields...)
			}

			return report, err
		}
	}
}

// Timeout bounds each operation. A non-positive d disables it.
func Timeout(d time.Duration) Middleware {
	return func(next Operation) Operation {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx)
		}
	}
}

// notFound reports whether err is a missing-row condition the caller prints
// instead of failing.
func notFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
