package models

import "fmt"

// Category groups job postings. One category has many postings.
type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name" validate:"required,max=100"`
	Description string `db:"description" json:"description" validate:"max=250"`
}

func (c *Category) Validate() error {
	return validate.Struct(c)
}

func (c Category) String() string {
	return fmt.Sprintf("Category [id=%d, name=%s, description=%s]", c.ID, c.Name, c.Description)
}
