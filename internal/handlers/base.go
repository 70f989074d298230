package handlers

import (
	"errors"
	"net/http"

	"chirp/internal/services"
	"chirp/internal/utils"

	"github.com/gin-gonic/gin"
)

// HandleError maps the service error taxonomy to status codes. Anything
// outside the taxonomy is an infrastructure failure and stays opaque.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses a numeric path parameter; a second return of false means the
// response was already written.
func pathID(c *gin.Context, name string) (uint, bool) {
	id := utils.StringToUint(c.Param(name))
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// pageRequest reads the shared pagination query parameters with defaults.
func pageRequest(c *gin.Context) services.PageRequest {
	req := services.PageRequest{
		Page:      0,
		PageSize:  20,
		SortField: c.Query("sort_field"),
		SortDir:   services.SortDirection(c.Query("sort_dir")),
	}
	if p := c.Query("page"); p != "" {
		req.Page = utils.StringToInt(p)
	}
	if s := c.Query("page_size"); s != "" {
		req.PageSize = utils.StringToInt(s)
	}
	return req
}
