package api

import (
	"net/http"

	"messenger-backend/internal/auth"
	"messenger-backend/internal/config"
	"messenger-backend/internal/middleware"
	"messenger-backend/internal/models"
	"messenger-backend/internal/presence"
	"messenger-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	users      repository.UserRepository
	jwtManager *auth.JWTManager
	presence   *presence.Store
	config     *config.Config
	log        *zap.SugaredLogger
}

func NewServer(users repository.UserRepository, cfg *config.Config, pres *presence.Store, log *zap.SugaredLogger) *Server {
	return &Server{
		users:      users,
		jwtManager: auth.NewJWTManager(cfg),
		presence:   pres,
		config:     cfg,
		log:        log,
	}
}

// Auth Handlers

func (s *Server) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
	}

	if err := s.users.Create(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create user"})
		return
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, models.LoginResponse{
		Status:  "success",
		Message: "Account created.",
		User:    user,
		Token:   token,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
		return
	}

	if err := s.users.SetStatus(ctx, user.ID, "online"); err != nil {
		s.log.Errorw("failed to set online status", "error", err)
	}
	user.Status = "online"

	if s.presence != nil {
		_ = s.presence.Touch(ctx, user.ID)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Status:  "success",
		Message: "Logged in.",
		User:    *user,
		Token:   token,
	})
}

func (s *Server) Logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	if err := s.users.SetStatus(ctx, userID, "offline"); err != nil {
		s.log.Errorw("failed to set offline status", "error", err)
	}
	if s.presence != nil {
		_ = s.presence.SetOffline(ctx, userID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logged out."})
}

// User Handlers

func (s *Server) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	user, err := s.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

// GetUsers returns the directory of everyone except the caller.
func (s *Server) GetUsers(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	users, err := s.users.ListExcept(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Users retrieved.",
		"users":   users,
	})
}
