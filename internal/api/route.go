package api

import (
	"Neuron/internal/api/middleware"
	"Neuron/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.APIKeyMiddleware())
		{
			metricsGroup := authGroup.Group("/metrics")
			{
				metricsGroup.GET("/:entity_type/top", group.MetricHandler.Top)
				metricsGroup.GET("/:entity_type/:entity_id", group.MetricHandler.GetRange)
				metricsGroup.GET("/:entity_type/:entity_id/point", group.MetricHandler.GetPoint)
			}

			authorsGroup := authGroup.Group("/authors")
			{
				authorsGroup.GET("/top", group.AuthorHandler.Top)
				authorsGroup.GET("/:author_id/daily", group.AuthorHandler.GetDailyRange)
				authorsGroup.GET("/:author_id/intelligence", group.AuthorHandler.GetIntelligence)
			}

			computeGroup := authGroup.Group("/compute")
			{
				computeGroup.POST("/daily", group.ComputeHandler.ComputeDaily)
				computeGroup.POST("/authors", group.ComputeHandler.ComputeAuthors)
				computeGroup.POST("/intelligence", group.ComputeHandler.ComputeIntelligence)
				computeGroup.POST("/backfill", group.ComputeHandler.Backfill)
			}
		}
	}

	return r
}
