package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fruitapp/internal/handlers"
	"fruitapp/internal/middleware"
	"fruitapp/internal/models"
)

// SetupRouter builds the full route table. Reads on the catalog are
// public; every mutation sits behind bearer auth plus the admin role.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	if err := models.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.CORS())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method not allowed"})
	})

	// Uploaded media is served straight from the blob store root.
	router.Static("/uploads", h.Media.Root)

	requireAuth := middleware.RequireAuth(h.Users())
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("", apiIndex)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
		})

		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", requireAuth, h.Me)

		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", requireAuth, requireAdmin, h.CreateProduct)
		api.PUT("/products/:id", requireAuth, requireAdmin, h.UpdateProduct)
		api.DELETE("/products/:id", requireAuth, requireAdmin, h.DeleteProduct)

		api.GET("/attributes", h.ListAttributes)
		api.GET("/attributes/:id", h.GetAttribute)
		api.POST("/attributes", requireAuth, requireAdmin, h.CreateAttribute)
		api.PUT("/attributes/:id", requireAuth, requireAdmin, h.UpdateAttribute)
		api.DELETE("/attributes/:id", requireAuth, requireAdmin, h.DeleteAttribute)

		api.POST("/upload/media", requireAuth, requireAdmin, h.UploadMedia)
		api.DELETE("/upload/media/:field/:filename", requireAuth, requireAdmin, h.DeleteMedia)
	}

	return router
}

func apiIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Fruit Catalog API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth": gin.H{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"me":       "GET /api/auth/me",
			},
			"products": gin.H{
				"list":   "GET /api/products",
				"get":    "GET /api/products/:id",
				"create": "POST /api/products",
				"update": "PUT /api/products/:id",
				"delete": "DELETE /api/products/:id",
			},
			"attributes": gin.H{
				"list":   "GET /api/attributes",
				"get":    "GET /api/attributes/:id",
				"create": "POST /api/attributes",
				"update": "PUT /api/attributes/:id",
				"delete": "DELETE /api/attributes/:id",
			},
			"upload": gin.H{
				"media":  "POST /api/upload/media",
				"delete": "DELETE /api/upload/media/:field/:filename",
			},
		},
	})
}
