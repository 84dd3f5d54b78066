package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("secret124"))
}

func TestUserPrivilegesAndResponse(t *testing.T) {
	u := &User{
		Email:      "ann@example.com",
		FullName:   "Ann",
		Password:   "hash",
		IsActive:   true,
		Privileges: []Privilege{{Code: PrivItemCreate}, {Code: PrivUserView}},
	}
	assert.True(t, u.HasPrivilege(PrivItemCreate))
	assert.False(t, u.HasPrivilege(PrivItemDelete))
	assert.Equal(t, []string{PrivItemCreate, PrivUserView}, u.GetPrivilegeCodes())
	assert.Equal(t, "", u.RoleCode())

	u.Role = &Role{Code: RoleStaff}
	assert.Equal(t, RoleStaff, u.RoleCode())

	resp := u.ToResponse()
	assert.Equal(t, "ann@example.com", resp.Email)
	assert.Equal(t, []string{PrivItemCreate, PrivUserView}, resp.Privileges)
	assert.Equal(t, RoleStaff, resp.Role.Code)
}

func TestUserWithoutPrivilegesHasEmptyCodes(t *testing.T) {
	u := &User{}
	assert.NotNil(t, u.GetPrivilegeCodes())
	assert.Empty(t, u.ToResponse().Privileges)
}
