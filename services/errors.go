// file: services/errors.go
package services

import "errors"

// 业务错误集合，controller 用 errors.Is 映射到 HTTP 状态码
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyCompleted   = errors.New("challenge already completed")
	ErrIncorrectFlag      = errors.New("incorrect flag")
	ErrInsufficientXP     = errors.New("not enough XP for a hint")
	ErrHintNotAvailable   = errors.New("hint not available")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNameTaken          = errors.New("challenge name already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
