// file: services/service_test.go
package services

import (
	"CTFQuest/models"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立的内存 sqlite。
// 连接池压到 1，保证 :memory: 库在测试期间一直存活。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Level{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.FlagSubmission{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := Register(db, username, username+"@example.com", "password123")
	require.NoError(t, err)
	return user
}

func createTestLevel(t *testing.T, db *gorm.DB, order int) *models.Level {
	t.Helper()
	level := models.Level{
		Name:        fmt.Sprintf("Level %d", order),
		Description: "test level",
		Order:       order,
	}
	require.NoError(t, db.Create(&level).Error)
	return &level
}

func createTestChallenge(t *testing.T, db *gorm.DB, levelID uint32, name, flag, hint string, reward int) *models.Challenge {
	t.Helper()
	challenge := models.Challenge{
		Name:        name,
		Description: "test challenge",
		Difficulty:  models.ChallengeDifficultyEasy,
		Category:    "Misc",
		XPReward:    reward,
		Flag:        flag,
		Hint:        hint,
		LevelID:     levelID,
	}
	require.NoError(t, db.Create(&challenge).Error)
	return &challenge
}

func userXP(t *testing.T, db *gorm.DB, userID uint32) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.XP
}
