package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace"}
	require.Equal(t, "Ada Lovelace", u.FullName())
}

func TestUserIsTrusted(t *testing.T) {
	require.False(t, (&User{Roles: []UserRole{RoleUser}}).IsTrusted())
	require.True(t, (&User{Roles: []UserRole{RoleUser, RoleModerator}}).IsTrusted())
	require.True(t, (&User{Roles: []UserRole{RoleAdmin}}).IsTrusted())
}
