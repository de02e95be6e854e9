package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_AddProfile(t *testing.T) {
	var u User

	u.AddProfile(Profile{ID: 2})
	u.AddProfile(Profile{ID: 3})
	u.AddProfile(Profile{ID: 2, Name: ProfileAdministrator})
	u.AddProfile(Profile{Name: "NUEVO"})
	u.AddProfile(Profile{Name: "OTRO"})

	assert.Equal(t, []int64{2, 3, 0, 0}, u.ProfileIDs())
}

func TestUser_HashPassword(t *testing.T) {
	u := User{Password: "12345"}

	require.NoError(t, u.HashPassword())
	hash := u.Password

	assert.NotEqual(t, "12345", hash)
	assert.True(t, IsPasswordHash(hash))
	assert.True(t, u.CheckPassword("12345"))
	assert.False(t, u.CheckPassword("54321"))

	require.NoError(t, u.HashPassword())
	assert.Equal(t, hash, u.Password)
}

func TestUser_Validate(t *testing.T) {
	valid := User{Name: "Ana", Email: "ana@example.com", Username: "ana", Password: "x"}
	require.NoError(t, valid.Validate())

	tests := map[string]func(*User){
		"missing email":   func(u *User) { u.Email = "" },
		"malformed email": func(u *User) { u.Email = "ana.example.com" },
		"missing name":    func(u *User) { u.Name = "" },
		"long username":   func(u *User) { u.Username = strings.Repeat("u", 51) },
		"empty password":  func(u *User) { u.Password = "" },
	}

	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			u := valid
			modify(&u)
			assert.Error(t, u.Validate())
		})
	}
}
