package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterConfig bundles everything route registration needs.
type RouterConfig struct {
	Auth       *AuthHandler
	Categories *CategoryHandler
	Articles   *ArticleHandler
	Comments   *CommentHandler

	// Authenticate must reject missing (401) and bad/stale (403) tokens.
	Authenticate gin.HandlerFunc
	// RequireAdmin runs after Authenticate and rejects non-admins (403).
	RequireAdmin gin.HandlerFunc

	UploadDir string
}

// RegisterRoutes wires the full API surface onto the router.
func RegisterRoutes(router *gin.Engine, rc RouterConfig) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the blog API",
			"api":     "/api",
		})
	})

	// Uploaded images are served straight from disk.
	router.Static("/public", rc.UploadDir)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", rc.Auth.Register)
		auth.POST("/login", rc.Auth.Login)
		auth.GET("/profile", rc.Authenticate, rc.Auth.Profile)
		auth.GET("/users", rc.Authenticate, rc.RequireAdmin, rc.Auth.GetAllUsers)
		auth.PUT("/users/:id/role", rc.Authenticate, rc.RequireAdmin, rc.Auth.UpdateUserRole)
		auth.DELETE("/users/:id", rc.Authenticate, rc.RequireAdmin, rc.Auth.DeleteUser)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", rc.Categories.GetAll)
		categories.GET("/:id", rc.Categories.GetByID)
		categories.GET("/:id/articles", rc.Categories.GetArticles)
		categories.POST("", rc.Authenticate, rc.RequireAdmin, rc.Categories.Create)
		categories.PUT("/:id", rc.Authenticate, rc.RequireAdmin, rc.Categories.Update)
		categories.DELETE("/:id", rc.Authenticate, rc.RequireAdmin, rc.Categories.Delete)
	}

	articles := api.Group("/articles")
	{
		articles.GET("", rc.Articles.GetAll)
		articles.GET("/:id", rc.Articles.GetByID)
		articles.GET("/:id/comments", rc.Articles.GetComments)
		articles.POST("", rc.Authenticate, rc.RequireAdmin, rc.Articles.Create)
		articles.POST("/upload", rc.Authenticate, rc.RequireAdmin, rc.Articles.UploadImage)
		articles.POST("/with-image", rc.Authenticate, rc.RequireAdmin, rc.Articles.CreateWithImage)
		articles.PUT("/:id", rc.Authenticate, rc.RequireAdmin, rc.Articles.Update)
		articles.PUT("/:id/with-image", rc.Authenticate, rc.RequireAdmin, rc.Articles.UpdateWithImage)
		articles.DELETE("/:id", rc.Authenticate, rc.RequireAdmin, rc.Articles.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.GET("", rc.Comments.GetAll)
		comments.GET("/:id", rc.Comments.GetByID)
		comments.POST("", rc.Authenticate, rc.Comments.Create)
		comments.PUT("/:id", rc.Authenticate, rc.Comments.Update)
		comments.DELETE("/:id", rc.Authenticate, rc.Comments.Delete)
	}
}
