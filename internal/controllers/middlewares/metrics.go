package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
)

// unmatchedEndpoint метка для запросов, не попавших ни в один маршрут.
const unmatchedEndpoint = "unmatched"

// RequestObserver принимает результат обработки запроса.
type RequestObserver interface {
	Observe(method, endpoint string, status int, elapsed time.Duration)
}

// MetricsMiddleware отдает в observer метод, шаблон маршрута, статус и длительность запроса.
// Метка endpoint это шаблон маршрута (`/:code`), а не путь запроса.
func MetricsMiddleware(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedEndpoint
		}
		observer.Observe(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
