// file: controllers/user_controller.go
package controllers

import (
	"CTFQuest/dto"
	"CTFQuest/middlewares"
	"CTFQuest/services"
	"CTFQuest/utils"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"time"
)

// 排行榜缓存有效期较短，保证准实时性
const leaderboardCacheTTL = 15 * time.Second

type UserController struct {
	DB  *gorm.DB
	RDB *redis.Client // 可为 nil，此时排行榜不走缓存
}

func NewUserController(db *gorm.DB, rdb *redis.Client) *UserController {
	return &UserController{DB: db, RDB: rdb}
}

// --- 公开接口 ---

func (ctl *UserController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "参数无效: "+err.Error())
		return
	}

	user, err := services.Register(ctl.DB, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(c, http.StatusInternalServerError, "数据库错误: "+err.Error())
		return
	}

	token, err := utils.GenerateToken(*user)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Token 生成失败")
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"xp":       user.XP,
		},
	})
}

// Login 兼容 OAuth2 password 表单（username 字段放邮箱），也接受 JSON
func (ctl *UserController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "参数无效: "+err.Error())
		return
	}

	user, err := services.Authenticate(ctl.DB, req.Username, req.Password)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := utils.GenerateToken(*user)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Token 生成失败")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"xp":       user.XP,
		},
	})
}

func (ctl *UserController) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	// 先查 Redis 缓存
	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if ctl.RDB != nil {
		if val, err := ctl.RDB.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var entries []dto.LeaderboardEntry
			if json.Unmarshal([]byte(val), &entries) == nil {
				utils.Success(c, "success (from cache)", entries)
				return
			}
		}
	}

	users, err := services.TopUsers(ctl.DB, limit)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, dto.LeaderboardEntry{Username: user.Username, XP: user.XP})
	}

	// 缓存未命中，回填 Redis
	if ctl.RDB != nil {
		if jsonData, err := json.Marshal(entries); err == nil {
			ctl.RDB.Set(c.Request.Context(), cacheKey, jsonData, leaderboardCacheTTL)
		}
	}

	utils.Success(c, "success", entries)
}

// --- 需要登录的接口 ---

func (ctl *UserController) GetProfile(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	ids, err := services.CompletedChallengeIDs(ctl.DB, user.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	utils.Success(c, "success", dto.ProfileResp{
		ID:                  user.ID,
		Username:            user.Username,
		Email:               user.Email,
		XP:                  user.XP,
		CreatedAt:           user.CreatedAt.Format("2006-01-02 15:04:05"),
		LastLogin:           user.LastLogin.Format("2006-01-02 15:04:05"),
		CompletedChallenges: ids,
	})
}

func (ctl *UserController) UpdateXP(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	amount, err := strconv.Atoi(c.Query("amount"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的 amount")
		return
	}

	newXP, err := services.UpdateXP(ctl.DB, user, amount)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "数据库错误: "+err.Error())
		return
	}

	utils.Success(c, "XP updated successfully", gin.H{"new_xp": newXP})
}

// GetCompletedChallenges 当前用户在指定关卡内完成的题目 id 列表
func (ctl *UserController) GetCompletedChallenges(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	levelID, err := strconv.Atoi(c.Query("level_id"))
	if err != nil || levelID <= 0 {
		utils.Error(c, http.StatusBadRequest, "无效的 level_id")
		return
	}

	ids, err := services.CompletedChallengeIDsForLevel(ctl.DB, user.ID, uint32(levelID))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	utils.Success(c, "success", gin.H{"completed_challenge_ids": ids})
}
