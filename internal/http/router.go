package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas del asistente.
func NewRouter(
	logger *zap.Logger,
	catalogH *CatalogHandler,
	formH *FormHandler,
	recH *RecommendationHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/catalog", catalogH.ListProducts)
	r.GET("/catalog/:id", catalogH.GetProduct)

	r.GET("/form", formH.Options)
	r.POST("/form/steps/:step/validate", formH.ValidateStep)

	recs := r.Group("/recommendations")
	recs.POST("", recH.Create)
	recs.GET("/:id", recH.Get)
	recs.DELETE("/:id", recH.Discard)
	recs.GET("/:id/document", recH.Document)
	recs.POST("/:id/share", recH.Share)
	recs.POST("/:id/email", recH.Email)

	shared := r.Group("/shared")
	shared.GET("/:token", recH.GetShared)
	shared.GET("/:token/document", recH.SharedDocument)

	return r
}

// NewCORSHandler envuelve el router para el formulario que corre en el navegador.
func NewCORSHandler(allowedOrigins []string, h http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})
	return c.Handler(h)
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
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
