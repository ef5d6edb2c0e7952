package router

import (
	"github.com/gin-gonic/gin"
	"github.com/steelify/catalog-backend/config"
	"github.com/steelify/catalog-backend/internal/app/controller"
	"github.com/steelify/catalog-backend/internal/middleware"
)

type Router struct {
	catalogController     *controller.CatalogController
	combinationController *controller.CombinationController
	config                *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	combinationController *controller.CombinationController,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:     catalogController,
		combinationController: combinationController,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Catalog API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", r.catalogController.ListProducts)
		v1.GET("/materials", r.catalogController.ListMaterials)
		v1.GET("/grades", r.catalogController.ListGrades)

		combinations := v1.Group("/product-combinations")
		{
			combinations.GET("", r.combinationController.ListCombinations)
			combinations.GET("/count-by-product", r.combinationController.CountByProduct)
			combinations.GET("/count-by-material", r.combinationController.CountByMaterial)
			combinations.GET("/:id", r.combinationController.GetCombinationByID)
			combinations.POST("", r.combinationController.CreateCombinations)
			combinations.PUT("/:id", r.combinationController.UpdateCombination)
		}

		v1.PUT("/bulk-update", r.combinationController.BulkUpdateCombinations)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
