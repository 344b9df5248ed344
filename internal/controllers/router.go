package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/tinyurl/internal/controllers/middlewares"
)

const metricsPath = "/metrics"

// MetricsExporter собирает метрики запросов и отдает их по /metrics.
type MetricsExporter interface {
	middlewares.RequestObserver
	Handler() http.Handler
}

type RouterParams struct {
	URLService  URLShortener
	PingService ConnectionChecker
	Metrics     MetricsExporter // nil отключает /metrics
	Logger      *logrus.Logger
}

// SetupRouter собирает таблицу маршрутов. Статические пути регистрируются раньше `/:code`,
// gin в любом случае отдает им приоритет над параметром.
func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(loadTemplates())

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	if params.Metrics != nil {
		r.Use(middlewares.MetricsMiddleware(params.Metrics))
	}
	r.Use(middlewares.GzipMiddleware(metricsPath))

	homeController := NewHomeController(params.URLService)
	pingController := NewPingController(params.PingService)
	shortURLController := NewShortURLController(params.URLService)

	r.GET("/", homeController.Index)
	r.GET("/health", pingController.Health)
	if params.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(params.Metrics.Handler()))
	}
	r.POST("/shorten", shortURLController.Create)
	r.GET("/urls", shortURLController.List)
	r.DELETE("/urls/:code", shortURLController.Delete)

	r.GET("/:code", shortURLController.Redirect)

	r.NoRoute(func(ctx *gin.Context) {
		abortWithDetail(ctx, http.StatusNotFound, notFoundDetail)
	})
	return r
}
