package handlers

import (
	"net/http"

	"chirp/internal/middleware"
	"chirp/internal/services"
	"chirp/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{comments: services.NewCommentService()}
}

type commentContentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comment, err := h.comments.GetComment(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comment":      comment,
		"content_html": utils.RenderMarkdown(comment.Content),
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := middleware.CurrentUser(c)
	comment, err := h.comments.UpdateComment(id, current.ID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	utils.GetCache().Delete(postDetailCacheKey(comment.PostID))
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	current := middleware.CurrentUser(c)
	comment, err := h.comments.GetComment(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.comments.DeleteComment(id, current.ID); err != nil {
		HandleError(c, err)
		return
	}

	utils.GetCache().Delete(postDetailCacheKey(comment.PostID))
	c.Status(http.StatusNoContent)
}
