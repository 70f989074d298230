package services

import (
	"errors"
	"strings"

	"chirp/internal/db"
	"chirp/internal/logger"
	"chirp/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService is the content store for posts plus the like interaction.
type PostService struct {
	users         *UserService
	notifications *NotificationService
}

func NewPostService() *PostService {
	return &PostService{
		users:         NewUserService(),
		notifications: NewNotificationService(),
	}
}

var postSortFields = map[string]string{
	"id":          "id",
	"created_at":  "created_at",
	"likes_count": "likes_count",
}

func validatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errValidation("post content must not be blank")
	}
	return nil
}

// CreatePost persists a new post owned by userID with a zero like counter.
func (s *PostService) CreatePost(userID uint, content string) (*models.Post, error) {
	if err := validatePostContent(content); err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:     &user.ID,
		User:       user,
		Content:    content,
		LikesCount: 0,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}

	logger.L.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", user.ID))
	return &post, nil
}

func (s *PostService) GetPost(postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.DB.Preload("User").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("post with id %d not found", postID)
		}
		return nil, err
	}

	var commentCount int64
	if err := db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error; err != nil {
		return nil, err
	}
	post.CommentCount = int(commentCount)
	return &post, nil
}

// UpdatePost replaces the content. Only the owner may edit; a detached post
// (owner deleted) can no longer be edited by anyone.
func (s *PostService) UpdatePost(postID, requesterID uint, content string) (*models.Post, error) {
	if err := validatePostContent(content); err != nil {
		return nil, err
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("post with id %d not found", postID)
		}
		return nil, err
	}
	if post.UserID == nil || *post.UserID != requesterID {
		return nil, errForbidden("can not perform this operation")
	}

	post.Content = content
	if err := db.DB.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the post and all of its comments in one transaction,
// comments first.
func (s *PostService) DeletePost(postID, requesterID uint) error {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("post with id %d not found", postID)
		}
		return err
	}
	if post.UserID == nil || *post.UserID != requesterID {
		return errForbidden("can not perform this operation")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return err
	}

	logger.L.Info("post deleted", zap.Uint("post_id", postID))
	return nil
}

// LikePost adds exactly one like per call and fans out a LIKE notification to
// the post owner. The increment is pushed to the store as a single SQL
// expression so concurrent likes can not lose updates. Counter bump and
// fan-out share one transaction.
func (s *PostService) LikePost(postID, userID uint) (*models.Post, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error; err != nil {
			return err
		}
		// A detached post has nobody to notify.
		if post.UserID == nil {
			return nil
		}
		_, err := s.notifications.createTx(tx, *post.UserID, &user.ID, &post.ID, models.NotificationTypeLike)
		return err
	})
	if err != nil {
		return nil, err
	}

	post.LikesCount++
	return post, nil
}

// SearchPosts matches the keyword against post content. The keyword is
// required on this path.
func (s *PostService) SearchPosts(keyword string, req PageRequest) (*Page[models.Post], error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errValidation("provide a search keyword")
	}
	order, err := req.orderClause(postSortFields, "created_at")
	if err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(keyword) + "%"

	var total int64
	if err := db.DB.Model(&models.Post{}).Where("LOWER(content) LIKE ?", pattern).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := db.DB.Preload("User").Where("LOWER(content) LIKE ?", pattern).Order(order).
		Limit(req.PageSize).Offset(req.offset()).Find(&posts).Error; err != nil {
		return nil, err
	}
	return newPage(posts, total, req), nil
}

// ListPosts returns one page of all posts.
func (s *PostService) ListPosts(req PageRequest) (*Page[models.Post], error) {
	order, err := req.orderClause(postSortFields, "created_at")
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := db.DB.Preload("User").Order(order).
		Limit(req.PageSize).Offset(req.offset()).Find(&posts).Error; err != nil {
		return nil, err
	}
	return newPage(posts, total, req), nil
}
