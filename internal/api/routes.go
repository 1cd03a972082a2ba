package api

import (
	"messenger-backend/internal/auth"
	"messenger-backend/internal/config"
	"messenger-backend/internal/database"
	"messenger-backend/internal/middleware"
	"messenger-backend/internal/presence"
	"messenger-backend/internal/repository"
	"messenger-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config, pres *presence.Store, log *zap.SugaredLogger) error {
	users := repository.NewUserRepository(db.Pool, log)
	messages := repository.NewMessageRepository(db.Pool, log)

	localStorage, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.AudioDir)
	if err != nil {
		return err
	}

	server := NewServer(users, cfg, pres, log)
	chatHandler := NewChatHandler(messages, users, localStorage, pres, log)
	uploadHandler := NewUploadHandler(localStorage, users, cfg.Upload.MaxImageSize, log)
	jwtManager := auth.NewJWTManager(cfg)

	router.Use(middleware.CORSSpecific(cfg.GetCORSOrigins()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "messenger-backend",
		})
	})

	// Uploaded assets are served by filename convention.
	router.Static("/uploads", cfg.Upload.Dir)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", server.Register)
			authGroup.POST("/login", server.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			protected.POST("/auth/logout", server.Logout)
			protected.GET("/profile", server.GetProfile)
			protected.GET("/users", server.GetUsers)
			protected.POST("/upload", uploadHandler.UploadImage)

			// Chat routes
			chat := protected.Group("/chat")
			{
				chat.POST("/messages", chatHandler.SendMessage)
				chat.GET("/messages", chatHandler.GetMessages)
				chat.DELETE("/messages/:id", chatHandler.DeleteMessage)
				chat.GET("/contacts", chatHandler.GetContacts)
				chat.GET("/unread-count", chatHandler.GetUnreadCount)
			}
		}
	}

	return nil
}
