package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qasemB/blog-back-end/internal/config"
	"github.com/qasemB/blog-back-end/internal/handler"
	"github.com/qasemB/blog-back-end/internal/middleware"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/service"
	"github.com/qasemB/blog-back-end/internal/store"
	"github.com/qasemB/blog-back-end/internal/upload"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment != "production"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Open the JSON database (created with empty collections on first run)
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatal("Failed to open database",
			zap.String("path", cfg.DatabasePath),
			zap.Error(err),
		)
	}
	logger.Log.Info("Database loaded",
		zap.String("path", cfg.DatabasePath),
	)

	// Pick up external edits to db.json while the server runs
	if cfg.WatchDB {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			if err := db.Watch(stop); err != nil {
				logger.Log.Warn("Database watcher stopped",
					zap.Error(err),
				)
			}
		}()
	}

	saver, err := upload.NewSaver(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		logger.Log.Fatal("Failed to prepare upload directory",
			zap.String("dir", cfg.UploadDir),
			zap.Error(err),
		)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	categoryService := service.NewCategoryService(categoryRepo, articleRepo)
	articleService := service.NewArticleService(articleRepo, categoryRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, articleRepo)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadSize

	router.Use(cors.Default())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.Environment == "production"))

	handler.RegisterRoutes(router, handler.RouterConfig{
		Auth:         handler.NewAuthHandler(authService),
		Categories:   handler.NewCategoryHandler(categoryService),
		Articles:     handler.NewArticleHandler(articleService, saver),
		Comments:     handler.NewCommentHandler(commentService),
		Authenticate: middleware.Authenticate(cfg.JWTSecret, userRepo),
		RequireAdmin: middleware.RequireAdmin(),
		UploadDir:    cfg.UploadDir,
	})

	logger.Log.Info("Server starting",
		zap.String("port", cfg.ServerPort),
	)
	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Log.Fatal("Failed to start server",
			zap.Error(err),
		)
	}
}
