package services

import (
	"errors"
	"strings"
	"time"

	"chirp/internal/db"
	"chirp/internal/logger"
	"chirp/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService is the content store for comments. Creating a comment is the
// canonical compound interaction: resolve post and user, persist, fan out.
type CommentService struct {
	posts         *PostService
	users         *UserService
	notifications *NotificationService
}

func NewCommentService() *CommentService {
	return &CommentService{
		posts:         NewPostService(),
		users:         NewUserService(),
		notifications: NewNotificationService(),
	}
}

var commentSortFields = map[string]string{
	"id":         "comments.id",
	"created_at": "comments.created_at",
}

// CommentView is the listing projection: comment fields plus the author's
// username (empty for orphaned comments).
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    *uint     `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errValidation("comment content must not be blank")
	}
	return nil
}

// CreateComment resolves the post and the commenting user, persists the
// comment and fans out a COMMENT notification to the post owner — all inside
// one transaction, and the notification references the entities resolved
// here, not a fresh lookup.
func (s *CommentService) CreateComment(userID, postID uint, content string) (*models.Comment, error) {
	post, err := s.posts.GetPost(postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  &user.ID,
		Content: content,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if post.UserID == nil {
			return nil
		}
		_, err := s.notifications.createTx(tx, *post.UserID, &user.ID, &post.ID, models.NotificationTypeComment)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.L.Info("comment created",
		zap.Uint("comment_id", comment.ID),
		zap.Uint("post_id", post.ID),
		zap.Uint("user_id", user.ID))
	comment.User = user
	return &comment, nil
}

func (s *CommentService) GetComment(commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := db.DB.Preload("User").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("comment with id %d not found", commentID)
		}
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces the content; only the author may edit.
func (s *CommentService) UpdateComment(commentID, requesterID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("comment with id %d not found", commentID)
		}
		return nil, err
	}
	if comment.UserID == nil || *comment.UserID != requesterID {
		return nil, errForbidden("can not perform this operation")
	}

	comment.Content = content
	if err := db.DB.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a single comment; only the author may delete it.
func (s *CommentService) DeleteComment(commentID, requesterID uint) error {
	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("comment with id %d not found", commentID)
		}
		return err
	}
	if comment.UserID == nil || *comment.UserID != requesterID {
		return errForbidden("can not perform this operation")
	}
	return db.DB.Delete(&comment).Error
}

// CommentsForPost returns one page of a post's comments.
func (s *CommentService) CommentsForPost(postID uint, req PageRequest) (*Page[CommentView], error) {
	if _, err := s.posts.GetPost(postID); err != nil {
		return nil, err
	}
	order, err := req.orderClause(commentSortFields, "created_at")
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.DB.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, err
	}

	var views []CommentView
	err = db.DB.Model(&models.Comment{}).
		Select("comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order(order).
		Limit(req.PageSize).Offset(req.offset()).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return newPage(views, total, req), nil
}

// SearchComments matches the keyword against a single post's comments.
func (s *CommentService) SearchComments(keyword string, postID uint, req PageRequest) (*Page[CommentView], error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errValidation("please enter a search keyword")
	}
	if _, err := s.posts.GetPost(postID); err != nil {
		return nil, err
	}
	order, err := req.orderClause(commentSortFields, "created_at")
	if err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(keyword) + "%"

	var total int64
	if err := db.DB.Model(&models.Comment{}).
		Where("post_id = ? AND LOWER(content) LIKE ?", postID, pattern).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var views []CommentView
	err = db.DB.Model(&models.Comment{}).
		Select("comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ? AND LOWER(comments.content) LIKE ?", postID, pattern).
		Order(order).
		Limit(req.PageSize).Offset(req.offset()).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return newPage(views, total, req), nil
}
