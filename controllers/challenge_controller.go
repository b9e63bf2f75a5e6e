// file: controllers/challenge_controller.go
package controllers

import (
	"CTFQuest/dto"
	"CTFQuest/mappers"
	"CTFQuest/middlewares"
	"CTFQuest/services"
	"CTFQuest/utils"
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

type ChallengeController struct {
	DB *gorm.DB
}

func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{DB: db}
}

// --- 公开接口 ---

func (ctl *ChallengeController) ListChallenges(c *gin.Context) {
	challenges, err := services.AllChallenges(ctl.DB)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	items := mappers.MapModelsToItemResps(challenges)
	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

func (ctl *ChallengeController) GetChallengeDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的题目ID")
		return
	}

	challenge, err := services.ChallengeByID(ctl.DB, uint32(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(c, http.StatusNotFound, "题目不存在")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}
	utils.Success(c, "success", mappers.MapModelToDetailResp(*challenge))
}

// --- 需要登录的接口 ---

// CreateChallenge —— 使用 DTO + 手动映射 + Normalize 兼容。
// 源系统这个接口不鉴权，属于安全漏洞，这里统一要求 Bearer Token。
func (ctl *ChallengeController) CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "参数无效: "+err.Error())
		return
	}
	req.Normalize() // 兼容 camelCase / snake_case

	// 必填校验（统一在这里做，避免绑定阶段因别名导致的校验失败）
	if req.Name == "" || req.Description == "" || req.Category == "" || req.LevelID == 0 {
		utils.Error(c, http.StatusBadRequest, "缺少必填字段")
		return
	}
	if req.Difficulty != "" &&
		req.Difficulty != "Easy" && req.Difficulty != "Medium" && req.Difficulty != "Hard" {
		utils.Error(c, http.StatusBadRequest, "difficulty 取值无效（Easy/Medium/Hard）")
		return
	}

	challenge := mappers.MapCreateReqToModel(req)
	if err := services.CreateChallenge(ctl.DB, &challenge); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.Error(c, http.StatusNotFound, "关卡不存在")
		case errors.Is(err, services.ErrNameTaken):
			utils.Error(c, http.StatusBadRequest, err.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, "创建题目失败: "+err.Error())
		}
		return
	}

	utils.Success(c, "Challenge created successfully", mappers.MapModelToDetailResp(challenge))
}

func (ctl *ChallengeController) SubmitFlag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的题目ID")
		return
	}

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	result, err := services.SubmitFlag(ctl.DB, user.ID, uint32(id), req.Flag)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.Error(c, http.StatusNotFound, "题目或用户不存在")
		case errors.Is(err, services.ErrAlreadyCompleted):
			utils.Error(c, http.StatusBadRequest, "Challenge already completed")
		case errors.Is(err, services.ErrIncorrectFlag):
			utils.Error(c, http.StatusBadRequest, "Flag 错误")
		default:
			utils.Error(c, http.StatusInternalServerError, "数据库错误: "+err.Error())
		}
		return
	}

	utils.Success(c, "Challenge completed!", result)
}

func (ctl *ChallengeController) RequestHint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的题目ID")
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	result, err := services.RequestHint(ctl.DB, user.ID, uint32(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrHintNotAvailable):
			utils.Error(c, http.StatusNotFound, "提示不存在或题目不存在")
		case errors.Is(err, services.ErrInsufficientXP):
			utils.Error(c, http.StatusBadRequest, err.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, "数据库错误: "+err.Error())
		}
		return
	}

	utils.Success(c, "success", result)
}

// GetStatus 当前用户是否已完成该题
func (ctl *ChallengeController) GetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的题目ID")
		return
	}

	user := middlewares.CurrentUser(c)
	if user == nil {
		utils.Error(c, http.StatusUnauthorized, "未登录")
		return
	}

	if _, err := services.ChallengeByID(ctl.DB, uint32(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(c, http.StatusNotFound, "题目不存在")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	completed, err := services.HasCompleted(ctl.DB, user.ID, uint32(id))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	utils.Success(c, "success", gin.H{"completed": completed})
}
