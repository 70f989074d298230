package main

import (
	"os"

	"chirp/internal/db"
	"chirp/internal/logger"
	"chirp/internal/middleware"
	"chirp/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Fall back to system env vars
	}

	logger.Init()
	defer logger.L.Sync()

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("chirp_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.L.Info("chirp server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.L.Fatal("server exited", zap.Error(err))
	}
}
