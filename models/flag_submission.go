// file: models/flag_submission.go
package models

import (
	"time"
)

// FlagSubmission 每次 Flag 提交的审计日志，只追加不修改
type FlagSubmission struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint32    `gorm:"not null;index" json:"user_id"`
	ChallengeID uint32    `gorm:"not null;index" json:"challenge_id"`
	Flag        string    `gorm:"size:255;not null" json:"flag"`
	Correct     bool      `gorm:"not null;default:false" json:"correct"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (FlagSubmission) TableName() string {
	return "ctfquest_flag_submission"
}
