package database

import (
	"os"
	"testing"

	"library-ui/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	os.Remove("test.db")
	require.NoError(t, InitDB("test.db"))
}

func teardownDB() {
	sqlDB, _ := GetDB().DB()
	sqlDB.Close()
	os.Remove("test.db")
}

func TestInitDBSeedsUserPair(t *testing.T) {
	setupDB(t)
	defer teardownDB()

	var users []model.User
	require.NoError(t, GetDB().Order("id ASC").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	assert.Equal(t, "user1", users[1].Username)
	assert.Equal(t, model.RoleGuest, users[1].Role)

	// seeding only happens on an empty table
	require.NoError(t, InitDB("test.db"))
	var count int64
	require.NoError(t, GetDB().Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestIsDuplicate(t *testing.T) {
	setupDB(t)
	defer teardownDB()

	err := GetDB().Create(&model.User{Username: "admin", Password: "x", Role: model.RoleGuest}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
	assert.False(t, IsDuplicate(nil))

	err = GetDB().Create(&model.Book{BookId: "AB1"}).Error
	require.NoError(t, err)
	err = GetDB().Create(&model.Book{BookId: "AB1"}).Error
	assert.True(t, IsDuplicate(err))
}

func TestInitDBRejectsForeignFile(t *testing.T) {
	os.Remove("test.db")
	require.NoError(t, os.WriteFile("test.db", []byte("definitely not a database"), 0o644))
	defer os.Remove("test.db")

	assert.Error(t, InitDB("test.db"))
}

func TestIsSQLiteDB(t *testing.T) {
	setupDB(t)
	defer teardownDB()

	require.NoError(t, Checkpoint())

	file, err := os.Open("test.db")
	require.NoError(t, err)
	defer file.Close()

	ok, err := IsSQLiteDB(file)
	require.NoError(t, err)
	assert.True(t, ok)
}
