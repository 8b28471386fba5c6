package service

import (
	"testing"

	"library-ui/database/model"
	"library-ui/util/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededUsers(t *testing.T) {
	setup(t)
	defer teardown()

	service := UserService{}

	admin, err := service.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@example.com", admin.Email)
	// stored hash, never the raw password
	assert.NotEqual(t, "admin123", admin.Password)
	assert.True(t, crypto.CheckPasswordHash(admin.Password, "admin123"))

	guest, err := service.GetUserByUsername("user1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, guest.Role)
}

func TestCheckUser(t *testing.T) {
	setup(t)
	defer teardown()

	service := UserService{}

	user := service.CheckUser("admin", "admin123")
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)

	// wrong password and unknown username are indistinguishable
	assert.Nil(t, service.CheckUser("admin", "wrong"))
	assert.Nil(t, service.CheckUser("nobody", "admin123"))
	assert.Nil(t, service.CheckUser("", ""))
}

func TestUpdateFirstUser(t *testing.T) {
	setup(t)
	defer teardown()

	service := UserService{}

	err := service.UpdateFirstUser("root", "s3cret")
	require.NoError(t, err)

	user := service.CheckUser("root", "s3cret")
	require.NotNil(t, user)
	assert.Equal(t, model.RoleAdmin, user.Role)

	assert.Error(t, service.UpdateFirstUser("", "pw"))
	assert.Error(t, service.UpdateFirstUser("name", ""))
}
