// file: models/user_challenge.go
package models

import (
	"time"
)

// UserChallenge 完成记录。只有提交正确 Flag 时才会写入（Success 恒为 true），
// (user_id, challenge_id) 上的唯一索引从数据库层面保证同一道题只计一次成功，
// 并发重复提交时靠唯一键冲突兜底，而不是应用层的先查后写。
type UserChallenge struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	UserID      uint32    `gorm:"not null;uniqueIndex:uniq_user_challenge" json:"user_id"`
	ChallengeID uint32    `gorm:"not null;uniqueIndex:uniq_user_challenge" json:"challenge_id"`
	Success     bool      `gorm:"not null;default:false" json:"success"`
	CompletedAt time.Time `json:"completed_at"`
}

func (UserChallenge) TableName() string {
	return "ctfquest_user_challenge"
}
