package router

import (
	"chirp/internal/handlers"
	"chirp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()

	// Public routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	r.GET("/posts", postHandler.List)
	r.GET("/posts/search", postHandler.Search)
	r.GET("/posts/:id", postHandler.Get)
	r.GET("/posts/:id/comments", postHandler.ListComments)
	r.GET("/posts/:id/comments/search", postHandler.SearchComments)
	r.GET("/comments/:id", commentHandler.Get)
	r.GET("/users/:id", userHandler.Get)
	r.GET("/users/:id/picture", userHandler.GetPicture)
	r.GET("/users/:id/followers", userHandler.Followers)
	r.GET("/users/:id/following", userHandler.Following)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)

		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.POST("/posts/:id/comments", postHandler.CreateComment)

		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		authorized.GET("/users", userHandler.List)
		authorized.GET("/users/search", userHandler.Search)
		authorized.PUT("/users/:id", userHandler.Update)
		authorized.DELETE("/users/:id", userHandler.Delete)
		authorized.POST("/users/:id/picture", userHandler.UploadPicture)
		authorized.POST("/users/:id/follow", userHandler.Follow)
		authorized.DELETE("/users/:id/follow", userHandler.Unfollow)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		authorized.POST("/notifications/:id/read", notificationHandler.MarkRead)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.PUT("/users/:id/lock", adminHandler.SetLocked)
		admin.PUT("/users/:id/enabled", adminHandler.SetEnabled)
	}
}
