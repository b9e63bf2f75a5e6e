// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeDifficulty string

const (
	ChallengeDifficultyEasy   ChallengeDifficulty = "Easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "Medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "Hard"
)

type Challenge struct {
	ID          uint32              `gorm:"primarykey" json:"id"`
	Name        string              `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Content     string              `gorm:"type:text" json:"content,omitempty"`
	ImageURL    string              `gorm:"size:255" json:"image_url,omitempty"`
	Difficulty  ChallengeDifficulty `gorm:"size:20;not null" json:"difficulty"`
	Category    string              `gorm:"size:50;not null" json:"category"`
	XPReward    int                 `gorm:"not null;default:10" json:"xp_reward"`
	// Flag 与 Hint 是服务端机密，永远不参与 JSON 序列化
	Flag      string    `gorm:"size:255;not null" json:"-"`
	Hint      string    `gorm:"type:text" json:"-"`
	LevelID   uint32    `gorm:"not null;index" json:"level_id"`
	Level     *Level    `gorm:"foreignKey:LevelID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Challenge) TableName() string {
	return "ctfquest_challenge"
}
