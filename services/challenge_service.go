// file: services/challenge_service.go
package services

import (
	"CTFQuest/models"
	"CTFQuest/utils"
	"errors"
	"gorm.io/gorm"
	"strings"
	"time"
)

// HintCost 每次提示固定扣除的 XP
const HintCost = 5

type SubmitResult struct {
	XPEarned int `json:"xp_earned"`
	TotalXP  int `json:"total_xp"`
}

type HintResult struct {
	Hint        string `json:"hint"`
	RemainingXP int    `json:"remaining_xp"`
}

// --- 关卡/题目浏览 ---

func AllLevels(db *gorm.DB) ([]models.Level, error) {
	var levels []models.Level
	err := db.Order("sort_order asc").Find(&levels).Error
	return levels, err
}

func LevelByID(db *gorm.DB, id uint32) (*models.Level, error) {
	var level models.Level
	if err := db.First(&level, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// ChallengesByLevel 关卡不存在返回 ErrNotFound；
// 关卡存在但没有题目返回空列表，不视为错误。
func ChallengesByLevel(db *gorm.DB, levelID uint32) ([]models.Challenge, error) {
	if _, err := LevelByID(db, levelID); err != nil {
		return nil, err
	}
	challenges := make([]models.Challenge, 0)
	err := db.Where("level_id = ?", levelID).Order("id asc").Find(&challenges).Error
	return challenges, err
}

func AllChallenges(db *gorm.DB) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := db.Order("id asc").Find(&challenges).Error
	return challenges, err
}

func ChallengeByID(db *gorm.DB, id uint32) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := db.First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// --- 题目创建 ---

// CreateChallenge 校验关卡存在后落库。未提供 Flag 时由服务端生成。
func CreateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	if _, err := LevelByID(db, challenge.LevelID); err != nil {
		return err
	}
	if strings.TrimSpace(challenge.Flag) == "" {
		challenge.Flag = utils.GenerateFlag()
	}
	if challenge.XPReward <= 0 {
		challenge.XPReward = 10
	}
	if challenge.Difficulty == "" {
		challenge.Difficulty = models.ChallengeDifficultyMedium
	}
	if err := db.Create(challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

// --- Flag 提交 ---

// HasCompleted 用户是否已成功完成某题
func HasCompleted(db *gorm.DB, userID, challengeID uint32) (bool, error) {
	var count int64
	err := db.Model(&models.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND success = ?", userID, challengeID, true).
		Count(&count).Error
	return count > 0, err
}

// SubmitFlag 处理一次 Flag 提交。
//
// 除了已完成短路之外，每次提交都会留下一条 FlagSubmission 审计记录。
// 提交正确时，完成记录、XP 增加和审计记录在同一个事务中落库；
// (user_id, challenge_id) 唯一索引保证并发重复提交最多只有一个事务成功，
// 撞上唯一键的那一个按已完成处理。
func SubmitFlag(db *gorm.DB, userID, challengeID uint32, submittedFlag string) (*SubmitResult, error) {
	var challenge models.Challenge
	if err := db.First(&challenge, challengeID).Error; err != nil {
		return nil, ErrNotFound
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}

	done, err := HasCompleted(db, userID, challengeID)
	if err != nil {
		return nil, err
	}
	if done {
		// 已完成直接短路，不写任何记录
		return nil, ErrAlreadyCompleted
	}

	// Flag 比较：去掉首尾空白，其余严格区分大小写
	if strings.TrimSpace(submittedFlag) != strings.TrimSpace(challenge.Flag) {
		wrong := models.FlagSubmission{
			UserID:      userID,
			ChallengeID: challengeID,
			Flag:        submittedFlag,
			Correct:     false,
			SubmittedAt: time.Now(),
		}
		if err := db.Create(&wrong).Error; err != nil {
			return nil, err
		}
		return nil, ErrIncorrectFlag
	}

	result := SubmitResult{XPEarned: challenge.XPReward}
	err = db.Transaction(func(tx *gorm.DB) error {
		record := models.UserChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
			Success:     true,
			CompletedAt: time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCompleted
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("xp", gorm.Expr("xp + ?", challenge.XPReward)).Error; err != nil {
			return err
		}

		correct := models.FlagSubmission{
			UserID:      userID,
			ChallengeID: challengeID,
			Flag:        submittedFlag,
			Correct:     true,
			SubmittedAt: time.Now(),
		}
		if err := tx.Create(&correct).Error; err != nil {
			return err
		}

		var fresh models.User
		if err := tx.First(&fresh, userID).Error; err != nil {
			return err
		}
		result.TotalXP = fresh.XP
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// --- 提示 ---

// RequestHint 扣 HintCost 点 XP 换取题目提示。
// 扣减用条件更新原子执行：余额不足时影响行数为 0，不会把 XP 扣成负数。
// 提示不留审计记录（与 Flag 提交不同，这是有意为之）。
func RequestHint(db *gorm.DB, userID, challengeID uint32) (*HintResult, error) {
	var challenge models.Challenge
	if err := db.First(&challenge, challengeID).Error; err != nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(challenge.Hint) == "" {
		return nil, ErrHintNotAvailable
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}

	result := HintResult{Hint: challenge.Hint}
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND xp >= ?", userID, HintCost).
			UpdateColumn("xp", gorm.Expr("xp - ?", HintCost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientXP
		}

		var fresh models.User
		if err := tx.First(&fresh, userID).Error; err != nil {
			return err
		}
		result.RemainingXP = fresh.XP
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
