package handlers

import (
	"io"
	"net/http"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users   *services.UserService
	follows *services.FollowService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		users:   services.NewUserService(),
		follows: services.NewFollowService(),
	}
}

type updateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
}

// canManage allows the account owner and admins through.
func canManage(c *gin.Context, userID uint) bool {
	current := middleware.CurrentUser(c)
	return current != nil && (current.ID == userID || current.Role == models.RoleAdmin)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUser(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !canManage(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "can not perform this operation"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateUser(id, req.Email, req.Username)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !canManage(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "can not perform this operation"})
		return
	}
	if err := h.users.DeleteUser(id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := h.users.ListUsers(pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) Search(c *gin.Context) {
	page, err := h.users.SearchUsers(c.Query("q"), pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UploadPicture stores the multipart "picture" file as the user's profile
// picture blob.
func (h *UserHandler) UploadPicture(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !canManage(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "can not perform this operation"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture file is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "can not read picture"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "can not read picture"})
		return
	}

	if _, err := h.users.UploadProfilePicture(id, data); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) GetPicture(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUser(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if len(user.ProfilePicture) == 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", user.ProfilePicture)
}

// Follow makes the current user a follower of :id.
func (h *UserHandler) Follow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	current := middleware.CurrentUser(c)
	if err := h.follows.Follow(id, current.ID); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	current := middleware.CurrentUser(c)
	if err := h.follows.Unfollow(id, current.ID); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Followers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	followers, err := h.follows.Followers(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (h *UserHandler) Following(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	following, err := h.follows.Following(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}
