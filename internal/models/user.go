package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name" validate:"required,max=100"`
	Email        string    `db:"email" validate:"required,email"`
	Username     string    `db:"username" validate:"required,max=50"`
	Password     string    `db:"password" validate:"required"`
	RegisteredAt time.Time `db:"registered_at"`
	Status       int       `db:"status"`

	// Profiles is an unordered set; see AddProfile.
	Profiles []Profile `db:"-"`
}

// AddProfile appends p unless a profile with the same id is already held.
// Profiles without an id are always appended.
func (u *User) AddProfile(p Profile) {
	if p.ID != 0 {
		for _, held := range u.Profiles {
			if held.ID == p.ID {
				return
			}
		}
	}
	u.Profiles = append(u.Profiles, p)
}

// ProfileIDs returns the ids of the held profiles.
func (u *User) ProfileIDs() []int64 {
	ids := make([]int64, 0, len(u.Profiles))
	for _, p := range u.Profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

func (u *User) Validate() error {
	return validate.Struct(u)
}

// HashPassword replaces a plaintext password with its bcrypt hash.
// A password that already is a bcrypt hash is left alone.
func (u *User) HashPassword() error {
	if IsPasswordHash(u.Password) {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func IsPasswordHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
