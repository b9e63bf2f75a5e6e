// file: services/user_service_test.go
package services

import (
	"CTFQuest/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)

	user, err := Register(db, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, 0, user.XP, "new user starts with zero XP")
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := Register(db, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = Register(db, "alice2", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// 重名用户名同样拒绝
	_, err = Register(db, "alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "failed registration must not create a row")
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice")

	user, err := Authenticate(db, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = Authenticate(db, "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateXP(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	newXP, err := UpdateXP(db, user, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, newXP)
	assert.Equal(t, 30, user.XP, "caller's copy is refreshed")

	newXP, err = UpdateXP(db, user, 12)
	require.NoError(t, err)
	assert.Equal(t, 42, newXP)
}

func TestTopUsersOrderAndTieBreak(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := UpdateXP(db, alice, 50)
	require.NoError(t, err)
	_, err = UpdateXP(db, bob, 50)
	require.NoError(t, err)
	_, err = UpdateXP(db, carol, 10)
	require.NoError(t, err)

	users, err := TopUsers(db, 10)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// xp 降序，同分按 id 升序：alice 先注册，排在 bob 前面
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)

	// limit 生效
	top, err := TopUsers(db, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestGetUserByEmail(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice")

	user, err := GetUserByEmail(db, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = GetUserByEmail(db, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
