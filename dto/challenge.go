// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	// 规范字段（snake_case）
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	Difficulty  string `json:"difficulty"` // Easy / Medium / Hard
	Category    string `json:"category"`
	XPReward    int    `json:"xp_reward"`
	Flag        string `json:"flag"` // 留空则服务端生成
	Hint        string `json:"hint"`
	LevelID     uint32 `json:"level_id"`

	// 仅用于兼容旧客户端（camelCase 变体），别名与上面 tag 不重复
	ImageURLCamel string `json:"imageUrl"`
	XPRewardCamel int    `json:"xpReward"`
	LevelIDCamel  uint32 `json:"levelId"`
}

// Normalize 将 camelCase 别名归一化到 snake_case，并做轻量清洗
func (r *CreateChallengeReq) Normalize() {
	if r.ImageURL == "" && r.ImageURLCamel != "" {
		r.ImageURL = r.ImageURLCamel
	}
	if r.XPReward == 0 && r.XPRewardCamel != 0 {
		r.XPReward = r.XPRewardCamel
	}
	if r.LevelID == 0 && r.LevelIDCamel != 0 {
		r.LevelID = r.LevelIDCamel
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
}

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	FlagCamel string `json:"Flag"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID         uint32 `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	XPReward   int    `json:"xp_reward"`
	LevelID    uint32 `json:"level_id"`
}

type ChallengeDetailResp struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
	XPReward    int    `json:"xp_reward"`
	LevelID     uint32 `json:"level_id"`
	HasHint     bool   `json:"has_hint"`
	CreatedAt   string `json:"created_at"`
}
