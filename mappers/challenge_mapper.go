// file: mappers/challenge_mapper.go
package mappers

import (
	"CTFQuest/dto"
	"CTFQuest/models"
)

func MapCreateReqToModel(req dto.CreateChallengeReq) models.Challenge {
	return models.Challenge{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Difficulty:  models.ChallengeDifficulty(req.Difficulty),
		Category:    req.Category,
		XPReward:    req.XPReward,
		Flag:        req.Flag,
		Hint:        req.Hint,
		LevelID:     req.LevelID,
	}
}

func MapModelToItemResp(ch models.Challenge) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:         ch.ID,
		Name:       ch.Name,
		Difficulty: string(ch.Difficulty),
		Category:   ch.Category,
		XPReward:   ch.XPReward,
		LevelID:    ch.LevelID,
	}
}

func MapModelsToItemResps(challenges []models.Challenge) []dto.ChallengeItemResp {
	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, MapModelToItemResp(ch))
	}
	return items
}

// MapModelToDetailResp 详情视图。Flag 和 Hint 原文不出网，只暴露是否有提示。
func MapModelToDetailResp(ch models.Challenge) dto.ChallengeDetailResp {
	return dto.ChallengeDetailResp{
		ID:          ch.ID,
		Name:        ch.Name,
		Description: ch.Description,
		Content:     ch.Content,
		ImageURL:    ch.ImageURL,
		Difficulty:  string(ch.Difficulty),
		Category:    ch.Category,
		XPReward:    ch.XPReward,
		LevelID:     ch.LevelID,
		HasHint:     ch.Hint != "",
		CreatedAt:   ch.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
