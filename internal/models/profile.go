package models

// Profile is a role label a user can hold, e.g. ADMINISTRADOR.
type Profile struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name" validate:"required,max=100"`
}

const (
	ProfileSupervisor    = "SUPERVISOR"
	ProfileAdministrator = "ADMINISTRADOR"
	ProfileUser          = "USUARIO"
)

func (p *Profile) Validate() error {
	return validate.Struct(p)
}
