// file: utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

// Error 同时写 HTTP 状态码和响应体，code 复用状态码
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Code: status, Msg: msg})
}
