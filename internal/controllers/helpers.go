package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// errorResponse тело ответа с ошибкой.
type errorResponse struct {
	Detail string `json:"detail"`
}

// abortWithDetail завершает запрос с кодом status и телом {"detail": detail}.
func abortWithDetail(ctx *gin.Context, status int, detail string) {
	ctx.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}
