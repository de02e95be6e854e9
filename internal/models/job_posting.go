package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusCreated  = "Creada"
	StatusApproved = "Aprobada"
	StatusDeleted  = "Eliminada"
)

var ErrNegativeSalary = errors.New("salary must not be negative")

type JobPosting struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name" validate:"required,max=200"`
	Description string          `db:"description"`
	Detail      string          `db:"detail"` // rich text (HTML)
	Date        time.Time       `db:"posting_date"`
	Salary      decimal.Decimal `db:"salary"`
	Status      string          `db:"status" validate:"required,max=20"`
	Featured    int             `db:"featured" validate:"oneof=0 1"`
	Image       string          `db:"image"`
	CategoryID  int64           `db:"category_id" validate:"required,gt=0"`

	// Category is filled on reads; writes only use CategoryID.
	Category *Category `db:"-" validate:"-"`
}

// SetCategory points the posting at c. Only the id is persisted; nil clears it.
func (j *JobPosting) SetCategory(c *Category) {
	j.Category = c
	j.CategoryID = 0
	if c != nil {
		j.CategoryID = c.ID
	}
}

func (j *JobPosting) Validate() error {
	if err := validate.Struct(j); err != nil {
		return err
	}
	if j.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	return nil
}

func (j JobPosting) String() string {
	return fmt.Sprintf("JobPosting [id=%d, name=%s, status=%s, salary=%s, featured=%d, category_id=%d]",
		j.ID, j.Name, j.Status, j.Salary.StringFixed(2), j.Featured, j.CategoryID)
}
