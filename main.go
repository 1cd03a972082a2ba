package main

import (
	"os"
	"time"

	"messenger-backend/internal/api"
	"messenger-backend/internal/config"
	"messenger-backend/internal/database"
	"messenger-backend/internal/presence"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables; a missing .env is fine in production
	_ = godotenv.Load()

	cfg := config.New()

	var zl *zap.Logger
	var err error
	if cfg.GinMode == "release" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	log := zl.Sugar()

	// Initialize database connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}
	log.Info("database ready")

	// Presence cache; lookups fall back to the users table when Redis is
	// unreachable.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pres := presence.NewStore(rdb, "messenger", 2*time.Minute)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	if err := api.SetupRoutes(router, db, cfg, pres, log); err != nil {
		log.Fatalw("failed to set up routes", "error", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infow("server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
}
