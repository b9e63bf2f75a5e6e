// file: utils/jwt.go
package utils

import (
	"CTFQuest/models"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

var (
	jwtSecret = []byte("supersecretkey")
	tokenTTL  = time.Hour
)

// InitJWT 用配置覆盖签名密钥和有效期，main 在启动时调用
func InitJWT(secret string, expireMinutes int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expireMinutes > 0 {
		tokenTTL = time.Duration(expireMinutes) * time.Minute
	}
}

type Claims struct {
	UserID uint32 `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateToken(user models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
