// file: dto/user.go
package dto

// ========== 请求 DTO ==========

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginReq 兼容 OAuth2 password 表单：username 字段里放的是邮箱。
// 同时带 form 和 json tag，表单和 JSON 客户端都能登录。
type LoginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ========== 响应 DTO ==========

type LeaderboardEntry struct {
	Username string `json:"username"`
	XP       int    `json:"xp"`
}

type ProfileResp struct {
	ID                  uint32   `json:"id"`
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	XP                  int      `json:"xp"`
	CreatedAt           string   `json:"created_at"`
	LastLogin           string   `json:"last_login"`
	CompletedChallenges []uint32 `json:"completed_challenges"`
}
