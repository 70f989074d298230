package services

import (
	"chirp/internal/db"
	"chirp/internal/logger"
	"chirp/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// FollowService owns the directed follow graph. Edges live in a single table
// queried from both directions, so the two sides can never drift apart.
type FollowService struct {
	users *UserService
}

func NewFollowService() *FollowService {
	return &FollowService{users: NewUserService()}
}

// UserSummary is the slim projection returned for follower/following listings.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ensure resolves both ends of an edge, followee first, and names the id that
// failed resolution.
func (s *FollowService) ensure(userID, followerID uint) error {
	exists, err := s.users.Exists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return errNotFound("user with id %d does not exist", userID)
	}
	exists, err = s.users.Exists(followerID)
	if err != nil {
		return err
	}
	if !exists {
		return errNotFound("follower with id %d does not exist", followerID)
	}
	return nil
}

// Follow records that followerID follows userID. Following someone twice is a
// no-op: the insert defers to the unique (user_id, follower_id) index.
func (s *FollowService) Follow(userID, followerID uint) error {
	if userID == followerID {
		return errForbidden("user can not follow himself")
	}
	if err := s.ensure(userID, followerID); err != nil {
		return err
	}

	follow := models.Follow{UserID: userID, FollowerID: followerID}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "follower_id"}},
		DoNothing: true,
	}).Create(&follow).Error
	if err != nil {
		return err
	}

	logger.L.Info("follow edge created", zap.Uint("user_id", userID), zap.Uint("follower_id", followerID))
	return nil
}

// Unfollow removes the edge if present; removing a missing edge is a no-op.
func (s *FollowService) Unfollow(userID, followerID uint) error {
	if userID == followerID {
		return errForbidden("user can not follow himself")
	}
	if err := s.ensure(userID, followerID); err != nil {
		return err
	}
	return db.DB.Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Follow{}).Error
}

// Followers lists the users following userID.
func (s *FollowService) Followers(userID uint) ([]UserSummary, error) {
	exists, err := s.users.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errNotFound("user with id %d does not exist", userID)
	}

	var followers []UserSummary
	err = db.DB.Model(&models.User{}).
		Select("users.id, users.username, users.email").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.id ASC").
		Scan(&followers).Error
	if followers == nil {
		followers = []UserSummary{}
	}
	return followers, err
}

// Following lists the users userID follows.
func (s *FollowService) Following(userID uint) ([]UserSummary, error) {
	exists, err := s.users.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errNotFound("user with id %d does not exist", userID)
	}

	var following []UserSummary
	err = db.DB.Model(&models.User{}).
		Select("users.id, users.username, users.email").
		Joins("JOIN follows ON follows.user_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.id ASC").
		Scan(&following).Error
	if following == nil {
		following = []UserSummary{}
	}
	return following, err
}
