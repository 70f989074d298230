package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", fmt.Errorf("post with id 7 not found: %w", services.ErrNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("post content must not be blank: %w", services.ErrValidation), http.StatusBadRequest},
		{"forbidden", fmt.Errorf("can not perform this operation: %w", services.ErrForbidden), http.StatusForbidden},
		{"conflict", fmt.Errorf("email already taken: %w", services.ErrConflict), http.StatusConflict},
		{"unknown error stays opaque", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "connection refused")
			} else {
				assert.Contains(t, w.Body.String(), "error")
			}
		})
	}
}

func TestPageRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/posts?page=2&page_size=5&sort_field=id&sort_dir=ASC", nil)

	req := pageRequest(c)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 5, req.PageSize)
	assert.Equal(t, "id", req.SortField)
	assert.Equal(t, services.SortAsc, req.SortDir)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/posts", nil)
	req = pageRequest(c)
	assert.Equal(t, 0, req.Page)
	assert.Equal(t, 20, req.PageSize)
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	id, ok := pathID(c, "id")
	require.True(t, ok)
	assert.Equal(t, uint(12), id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "potato"}}

	_, ok = pathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
