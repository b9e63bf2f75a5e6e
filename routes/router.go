// file: routes/router.go
package routes

import (
	"CTFQuest/controllers"
	"CTFQuest/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	userCtl := controllers.NewUserController(db, rdb)
	levelCtl := controllers.NewLevelController(db)
	challengeCtl := controllers.NewChallengeController(db)

	auth := middlewares.JWTAuthMiddleware(db)

	// --- 认证模块 ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", userCtl.Register)
		authRoutes.POST("/login", userCtl.Login)
	}

	// --- 用户模块 ---
	usersPublic := r.Group("/users")
	{
		usersPublic.GET("/leaderboard", userCtl.GetLeaderboard)
	}
	usersAuth := r.Group("/users")
	usersAuth.Use(auth)
	{
		usersAuth.GET("/profile", userCtl.GetProfile)
		usersAuth.POST("/update_xp", userCtl.UpdateXP)
		usersAuth.GET("/completed_challenges", userCtl.GetCompletedChallenges)
	}

	// --- 关卡模块 ---
	levelRoutes := r.Group("/levels")
	{
		levelRoutes.GET("", levelCtl.GetLevels)
		levelRoutes.GET("/:id", levelCtl.GetLevelDetail)
		levelRoutes.GET("/:id/challenges", levelCtl.GetLevelChallenges)
	}

	// --- 题目模块 ---
	challengeRoutes := r.Group("/challenges")
	{
		challengeRoutes.GET("", challengeCtl.ListChallenges)
		challengeRoutes.GET("/:id", challengeCtl.GetChallengeDetail)

		// 源系统的创建接口不鉴权，这里统一要求登录
		challengeRoutes.POST("/create", auth, challengeCtl.CreateChallenge)
		challengeRoutes.POST("/:id/submit_flag", auth, challengeCtl.SubmitFlag)
		challengeRoutes.POST("/:id/hint", auth, challengeCtl.RequestHint)
		challengeRoutes.GET("/:id/status", auth, challengeCtl.GetStatus)
	}

	return r
}
