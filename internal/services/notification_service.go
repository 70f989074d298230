package services

import (
	"errors"

	"chirp/internal/db"
	"chirp/internal/logger"
	"chirp/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService creates and serves the fan-out records written when a
// user likes or comments on someone's post.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Create persists one notification with the read flag down. Exported variant
// runs on the shared connection; interaction flows pass their transaction to
// createTx so the fan-out commits or rolls back with the primary mutation.
func (s *NotificationService) Create(recipientID uint, senderID, postID *uint, kind models.NotificationType) (*models.Notification, error) {
	return s.createTx(db.DB, recipientID, senderID, postID, kind)
}

func (s *NotificationService) createTx(tx *gorm.DB, recipientID uint, senderID, postID *uint, kind models.NotificationType) (*models.Notification, error) {
	notification := models.Notification{
		UserID:   recipientID,
		SenderID: senderID,
		PostID:   postID,
		Type:     kind,
		IsRead:   false,
	}
	if err := tx.Create(&notification).Error; err != nil {
		return nil, err
	}
	logger.L.Info("notification created",
		zap.Uint("notification_id", notification.ID),
		zap.Uint("recipient_id", recipientID),
		zap.String("type", string(kind)))
	return &notification, nil
}

// ForUser returns the recipient's notifications, newest first.
func (s *NotificationService) ForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.DB.Preload("Sender").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips the read flag of a single notification. There is no bulk
// variant; clients mark one at a time.
func (s *NotificationService) MarkRead(notificationID uint) error {
	var notification models.Notification
	if err := db.DB.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("notification with id %d not found", notificationID)
		}
		return err
	}
	return db.DB.Model(&notification).Update("is_read", true).Error
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
