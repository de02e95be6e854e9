package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"job-catalog/internal/repository"
)

// SQLSTATE class 23 codes the catalog cares about.
const foreignKeyViolation pq.ErrorCode = "23503"

// translate maps driver errors onto repository sentinels. Other errors pass through.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		if pqErr.Constraint != "" {
			return fmt.Errorf("%w: %s", repository.ErrReferenced, pqErr.Constraint)
		}
		return fmt.Errorf("%w: %s", repository.ErrReferenced, pqErr.Message)
	}

	return err
}
