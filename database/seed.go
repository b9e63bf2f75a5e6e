// file: database/seed.go
package database

import (
	"CTFQuest/models"
	"errors"
	"gorm.io/gorm"
	"log"
)

// Seed 导入初始关卡和示例题目。按关卡名判重，重复执行是幂等的。
func Seed(db *gorm.DB) error {
	var existing models.Level
	err := db.Where("name = ?", "Digital Detective").First(&existing).Error
	if err == nil {
		log.Println("Seed level already exists, skipping.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		level := models.Level{
			Name:        "Digital Detective",
			Description: "Use your OSINT skills to uncover hidden secrets in the digital world. Learn basic investigation techniques and apply them in challenges.",
			Order:       1,
		}
		if err := tx.Create(&level).Error; err != nil {
			return err
		}
		log.Printf("Seeded Level: %s", level.Name)

		challenges := []models.Challenge{
			{
				Name:        "The Hidden Message",
				Description: "A suspicious image has been found. Use steganography tools to reveal the hidden message within.",
				Difficulty:  models.ChallengeDifficultyEasy,
				Category:    "Steganography",
				XPReward:    100,
				Flag:        "FLAG{hidden_message_found}",
				Hint:        "Try running the image through a steganography decoder like steghide.",
				LevelID:     level.ID,
			},
			{
				Name:        "Who Am I?",
				Description: "Online clues hint at a hacker's identity. Use OSINT techniques to determine who they are.",
				Difficulty:  models.ChallengeDifficultyMedium,
				Category:    "OSINT",
				XPReward:    150,
				Flag:        "FLAG{identity_revealed}",
				Hint:        "Usernames tend to be reused across platforms.",
				LevelID:     level.ID,
			},
			{
				Name:        "SQL Injection Challenge",
				Description: "Bypass the login using a SQL injection attack. Hint: Try entering ' OR '1'='1 in the username field.",
				Difficulty:  models.ChallengeDifficultyEasy,
				Category:    "SQL Injection",
				XPReward:    20,
				Flag:        "FLAG{SQL_INJECTION_SUCCESS}",
				LevelID:     level.ID,
			},
			{
				Name:        "Basic Cryptography Challenge",
				Description: "Decrypt the following cipher to find the flag.",
				Difficulty:  models.ChallengeDifficultyMedium,
				Category:    "Cryptography",
				XPReward:    30,
				Flag:        "FLAG{CRYPTO_MASTER}",
				Hint:        "The cipher is a simple rotation. Count to 13.",
				LevelID:     level.ID,
			},
		}
		for i := range challenges {
			if err := tx.Create(&challenges[i]).Error; err != nil {
				return err
			}
			log.Printf("Seeded Challenge: %s", challenges[i].Name)
		}
		return nil
	})
}
