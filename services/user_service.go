// file: services/user_service.go
package services

import (
	"CTFQuest/models"
	"errors"
	"gorm.io/gorm"
	"time"
)

// Register 创建新用户，XP 从 0 开始。
// 邮箱/用户名先查重，唯一索引兜底并发下的重复注册。
func Register(db *gorm.DB, username, email, password string) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  password, // BeforeSave Hook 负责哈希
		XP:        0,
		LastLogin: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate 校验邮箱+密码。用户不存在和密码错误返回同一个错误，不泄露账号是否存在。
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	db.Model(&user).UpdateColumn("last_login", time.Now())
	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateXP 给用户加 amount 点经验，原子执行，返回更新后的总 XP。
// 本层不做上下限校验，调用方不得传入会把 XP 扣成负数的值。
func UpdateXP(db *gorm.DB, user *models.User, amount int) (int, error) {
	if err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error; err != nil {
		return 0, err
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		return 0, err
	}
	user.XP = fresh.XP
	return fresh.XP, nil
}

// TopUsers 排行榜查询。并列名次按 id 升序，保证结果稳定。
func TopUsers(db *gorm.DB, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var users []models.User
	err := db.Order("xp desc, id asc").Limit(limit).Find(&users).Error
	return users, err
}

// CompletedChallengeIDs 用户已完成题目的 id 列表（个人主页用）
func CompletedChallengeIDs(db *gorm.DB, userID uint32) ([]uint32, error) {
	ids := make([]uint32, 0)
	err := db.Model(&models.UserChallenge{}).
		Where("user_id = ? AND success = ?", userID, true).
		Order("challenge_id asc").
		Pluck("challenge_id", &ids).Error
	return ids, err
}

// CompletedChallengeIDsForLevel 用户在某一关卡内已完成题目的 id 列表
func CompletedChallengeIDsForLevel(db *gorm.DB, userID, levelID uint32) ([]uint32, error) {
	ids := make([]uint32, 0)
	err := db.Model(&models.UserChallenge{}).
		Joins("JOIN ctfquest_challenge ON ctfquest_challenge.id = ctfquest_user_challenge.challenge_id").
		Where("ctfquest_user_challenge.user_id = ? AND ctfquest_challenge.level_id = ? AND ctfquest_user_challenge.success = ?",
			userID, levelID, true).
		Order("ctfquest_user_challenge.challenge_id asc").
		Pluck("ctfquest_user_challenge.challenge_id", &ids).Error
	return ids, err
}
