package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/metrics"
)

// NewRouter configura o router do Gin com middlewares e as rotas do serving.
// Com jwtSecret vazio o /predict fica aberto (ambiente interno); configurado,
// exige bearer token.
func NewRouter(logger *zap.Logger, h *Handlers, m *metrics.Metrics, jwtSecret string) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", h.Health)
	r.GET("/version", h.Version)

	if jwtSecret != "" {
		r.POST("/predict", JWTAuthMiddleware(jwtSecret), h.Predict)
	} else {
		r.POST("/predict", h.Predict)
	}

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return r
}

// zapLoggerMiddleware cria um middleware simples de logging com zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware força Content-Type: application/json nas respostas.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
