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

type PostHandler struct {
	posts    *services.PostService
	comments *services.CommentService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		posts:    services.NewPostService(),
		comments: services.NewCommentService(),
	}
}

type postContentRequest struct {
	Content string `json:"content" binding:"required"`
}

func postDetailCacheKey(postID uint) string {
	return fmt.Sprintf("post:detail:%d", postID)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := middleware.CurrentUser(c)
	post, err := h.posts.CreatePost(current.ID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Get serves the post detail with rendered content. Shared across users, so
// the payload is cached briefly and invalidated on every mutation.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cacheKey := postDetailCacheKey(id)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if payload, isH := cached.(gin.H); isH {
			c.JSON(http.StatusOK, payload)
			return
		}
	}

	post, err := h.posts.GetPost(id)
	if err != nil {
		HandleError(c, err)
		return
	}

	payload := gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
	}
	utils.GetCache().Set(cacheKey, payload, 1*time.Minute)
	c.JSON(http.StatusOK, payload)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req postContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := middleware.CurrentUser(c)
	post, err := h.posts.UpdatePost(id, current.ID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	utils.GetCache().Delete(postDetailCacheKey(id))
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	current := middleware.CurrentUser(c)
	if err := h.posts.DeletePost(id, current.ID); err != nil {
		HandleError(c, err)
		return
	}

	utils.GetCache().Delete(postDetailCacheKey(id))
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	current := middleware.CurrentUser(c)
	post, err := h.posts.LikePost(id, current.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	utils.GetCache().Delete(postDetailCacheKey(id))
	c.JSON(http.StatusOK, gin.H{"likes_count": post.LikesCount})
}

func (h *PostHandler) List(c *gin.Context) {
	page, err := h.posts.ListPosts(pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PostHandler) Search(c *gin.Context) {
	page, err := h.posts.SearchPosts(c.Query("q"), pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateComment posts a comment on :id as the current user.
func (h *PostHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req postContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := middleware.CurrentUser(c)
	comment, err := h.comments.CreateComment(current.ID, id, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	utils.GetCache().Delete(postDetailCacheKey(id))
	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err := h.comments.CommentsForPost(id, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PostHandler) SearchComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err := h.comments.SearchComments(c.Query("q"), id, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
