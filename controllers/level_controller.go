// file: controllers/level_controller.go
package controllers

import (
	"CTFQuest/mappers"
	"CTFQuest/services"
	"CTFQuest/utils"
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

type LevelController struct {
	DB *gorm.DB
}

func NewLevelController(db *gorm.DB) *LevelController {
	return &LevelController{DB: db}
}

// GetLevels 关卡列表，按 order 升序
func (ctl *LevelController) GetLevels(c *gin.Context) {
	levels, err := services.AllLevels(ctl.DB)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}
	utils.Success(c, "success", levels)
}

func (ctl *LevelController) GetLevelDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的关卡ID")
		return
	}

	level, err := services.LevelByID(ctl.DB, uint32(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(c, http.StatusNotFound, "关卡不存在")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}
	utils.Success(c, "success", level)
}

// GetLevelChallenges 关卡下的题目列表。关卡存在但没有题目时返回空列表。
func (ctl *LevelController) GetLevelChallenges(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的关卡ID")
		return
	}

	challenges, err := services.ChallengesByLevel(ctl.DB, uint32(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(c, http.StatusNotFound, "关卡不存在")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	items := mappers.MapModelsToItemResps(challenges)
	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}
