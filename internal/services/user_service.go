package services

import (
	"errors"
	"strings"

	"chirp/internal/db"
	"chirp/internal/logger"
	"chirp/internal/models"
	"chirp/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService is the identity store: registration, credential checks, profile
// mutation, moderation flags, and the detach-then-delete account removal.
type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

var userSortFields = map[string]string{
	"id":         "id",
	"email":      "email",
	"username":   "username",
	"created_at": "created_at",
}

type RegisterRequest struct {
	Email    string
	Username string
	Password string
}

// Register creates a new account with the default role and flags. Email and
// username are lowercased and trimmed before uniqueness checks so lookups are
// case-insensitive.
func (s *UserService) Register(req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if email == "" || !strings.Contains(email, "@") {
		return nil, errValidation("a valid email is required")
	}
	if username == "" {
		return nil, errValidation("a username is required")
	}
	if len(req.Password) < 6 {
		return nil, errValidation("password must be at least 6 characters")
	}

	emailTaken, err := s.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, errValidation("user with email %s already exists", email)
	}
	usernameTaken, err := s.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, errValidation("username %s already exists", username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Username: username,
		Password: hash,
		Role:     models.RoleUser,
		Enabled:  true,
		Locked:   false,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// Two registrations can pass the checks above concurrently; the unique
		// indexes are the arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errConflict("email or username already taken")
		}
		return nil, err
	}

	logger.L.Info("user registered", zap.Uint("user_id", user.ID), zap.String("email", email))
	return &user, nil
}

// Authenticate verifies credentials and account flags for a login attempt.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errForbidden("invalid email or password")
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errForbidden("invalid email or password")
	}
	if user.Locked {
		return nil, errForbidden("account is locked")
	}
	if !user.Enabled {
		return nil, errForbidden("account is disabled")
	}
	return &user, nil
}

func (s *UserService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("user with id %d not found", userID)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("user with email %s not found", email)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Exists(userID uint) (bool, error) {
	var count int64
	err := db.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (s *UserService) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := db.DB.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

func (s *UserService) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := db.DB.Model(&models.User{}).Where("username = ?", strings.ToLower(username)).Count(&count).Error
	return count > 0, err
}

// UpdateUser changes email and username in place.
func (s *UserService) UpdateUser(userID uint, email, username string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))
	if email == "" || username == "" {
		return nil, errValidation("email and username are required")
	}

	user.Email = email
	user.Username = username
	if err := db.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errConflict("email or username already taken")
		}
		return nil, err
	}
	return user, nil
}

// UploadProfilePicture stores the raw bytes on the user row. The blob is
// opaque to the core; content-type handling lives at the transport layer.
func (s *UserService) UploadProfilePicture(userID uint, picture []byte) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if err := db.DB.Model(user).Update("profile_picture", picture).Error; err != nil {
		return nil, err
	}
	user.ProfilePicture = picture
	return user, nil
}

func (s *UserService) SetLocked(userID uint, locked bool) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	return db.DB.Model(user).Update("locked", locked).Error
}

func (s *UserService) SetEnabled(userID uint, enabled bool) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	return db.DB.Model(user).Update("enabled", enabled).Error
}

// ListUsers returns one page of all accounts.
func (s *UserService) ListUsers(req PageRequest) (*Page[models.User], error) {
	order, err := req.orderClause(userSortFields, "created_at")
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := db.DB.Order(order).Limit(req.PageSize).Offset(req.offset()).Find(&users).Error; err != nil {
		return nil, err
	}
	return newPage(users, total, req), nil
}

// SearchUsers matches the keyword against username and email.
func (s *UserService) SearchUsers(keyword string, req PageRequest) (*Page[models.User], error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errValidation("provide a search keyword")
	}
	order, err := req.orderClause(userSortFields, "created_at")
	if err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(keyword) + "%"

	var total int64
	if err := db.DB.Model(&models.User{}).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := db.DB.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order(order).Limit(req.PageSize).Offset(req.offset()).Find(&users).Error; err != nil {
		return nil, err
	}
	return newPage(users, total, req), nil
}

// DeleteUser detaches the account from its posts and comments, then removes
// the row, all in one transaction. Content survives with a cleared owner
// reference; follow edges and incoming notifications go with the row via the
// store's foreign keys.
func (s *UserService) DeleteUser(userID uint) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("user_id = ?", user.ID).Update("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", user.ID).Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return err
	}

	logger.L.Info("user deleted", zap.Uint("user_id", userID))
	return nil
}
