// file: middlewares/auth.go
package middlewares

import (
	"CTFQuest/models"
	"CTFQuest/services"
	"CTFQuest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strings"
)

const ctxUserKey = "current_user"

// JWTAuthMiddleware 验证 Bearer Token 并加载对应用户。
// Token 合法但邮箱声明找不到用户时同样按 401 处理。
func JWTAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "请求头中 Authorization 为空")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Error(c, http.StatusUnauthorized, "Authorization 格式有误")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "无效的 Token")
			c.Abort()
			return
		}

		user, err := services.GetUserByEmail(db, claims.Email)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "无效的 Token")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// CurrentUser 从上下文取出已认证用户，未认证返回 nil
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(ctxUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
