package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingController контроллер для проверки работоспособности сервиса.
type PingController struct {
	conn ConnectionChecker // Проверяет соединение с хранилищем
}

// NewPingController создает новый экземпляр PingController.
//
// Параметры:
//   - conn: интерфейс для проверки соединения
//
// Возвращает:
//   - *PingController: новый экземпляр контроллера
func NewPingController(conn ConnectionChecker) *PingController {
	return &PingController{conn: conn}
}

// healthResponse ответ GET /health.
type healthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Health обрабатывает GET /health запрос.
// Проверяет работоспособность сервиса и соединение с хранилищем.
//
// В случае успеха возвращает:
//   - HTTP 200 OK с телом {"status":"ok"}
//
// В случае ошибки возвращает:
//   - HTTP 503 Service Unavailable с телом {"status":"error","detail":"..."}
//
// Параметры:
//   - ctx: контекст Gin
func (c *PingController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := c.conn.CheckConnection(pingCtx); err != nil {
		_ = ctx.Error(fmt.Errorf("health check: %w", err))
		ctx.JSON(http.StatusServiceUnavailable, healthResponse{Status: "error", Detail: "storage unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
