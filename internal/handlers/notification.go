package handlers

import (
	"fmt"
	"net/http"
	"time"

	"chirp/internal/middleware"
	"chirp/internal/services"
	"chirp/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{notifications: services.NewNotificationService()}
}

func unreadCacheKey(userID uint) string {
	return fmt.Sprintf("notification:unread:%d", userID)
}

func (h *NotificationHandler) List(c *gin.Context) {
	current := middleware.CurrentUser(c)
	notifications, err := h.notifications.ForUser(current.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount serves the badge counter; cached briefly per user.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	current := middleware.CurrentUser(c)

	cacheKey := unreadCacheKey(current.ID)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if count, isCount := cached.(int64); isCount {
			c.JSON(http.StatusOK, gin.H{"unread_count": count})
			return
		}
	}

	count, err := h.notifications.CountUnread(current.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	utils.GetCache().Set(cacheKey, count, 30*time.Second)
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(id); err != nil {
		HandleError(c, err)
		return
	}

	current := middleware.CurrentUser(c)
	utils.GetCache().Delete(unreadCacheKey(current.ID))
	c.Status(http.StatusNoContent)
}
