package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	u := &User{Role: RoleManager}
	require.NoError(t, u.SetPassword("s3nha-forte"))

	assert.NotEqual(t, "s3nha-forte", u.Password)
	assert.True(t, u.CheckPassword("s3nha-forte"))
	assert.False(t, u.CheckPassword("outra"))
}

func TestRoles(t *testing.T) {
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleMiddleman.Valid())
	assert.False(t, Role("admin").Valid())

	assert.True(t, (&User{Role: RoleManager}).IsManager())
	assert.True(t, (&User{Role: RoleMiddleman}).IsMiddleman())
}
