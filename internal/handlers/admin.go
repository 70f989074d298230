package handlers

import (
	"net/http"

	"chirp/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the moderation flags on user accounts.
type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{users: services.NewUserService()}
}

type lockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

type enableRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *AdminHandler) SetLocked(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetLocked(id, *req.Locked); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) SetEnabled(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req enableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetEnabled(id, *req.Enabled); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
