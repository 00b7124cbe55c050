// users.go - Credential store: registration, authentication, admin user ops

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-tree-catalog/apperrors"
	"go-tree-catalog/models"
	"go-tree-catalog/policy"
	"go-tree-catalog/security"
	"go-tree-catalog/session"

	"gorm.io/gorm"
)

// UserStore persists user accounts.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore returns a UserStore backed by db.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// UserWithTreeCount is one row of the admin user listing: the public user
// fields plus the number of trees the user owns.
type UserWithTreeCount struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Avatar     *string   `json:"avatar"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	TreesCount int64     `json:"trees_count"`
}

// Register validates the input, hashes the password and inserts a new user
// with the default role. Duplicate usernames or emails yield ErrConflict and
// leave the table unchanged.
func (s *UserStore) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	if len(password) < security.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrValidation, security.MinPasswordLength)
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username or email already taken", apperrors.ErrConflict)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	// The unique constraints backstop the pre-check under concurrent inserts.
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if err = wrapDBError(err); errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: username or email already taken", apperrors.ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate looks the account up by username or email and verifies the
// password. Both failure modes return the same generic ErrAuth so callers
// cannot enumerate accounts.
func (s *UserStore) Authenticate(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuth
		}
		return nil, wrapDBError(err)
	}
	if !security.CheckPassword(password, user.Password) {
		return nil, apperrors.ErrAuth
	}
	return &user, nil
}

// GetByID fetches a single user.
func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &user, nil
}

// UpdateAvatar overwrites the avatar path for userID. Idempotent.
func (s *UserStore) UpdateAvatar(ctx context.Context, userID uint, avatarPath string) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar", avatarPath).Error
	return wrapDBError(err)
}

// ListWithTreeCounts returns every user with the count of trees they own,
// newest account first. Users with no trees appear with a zero count.
func (s *UserStore) ListWithTreeCounts(ctx context.Context) ([]UserWithTreeCount, error) {
	var rows []UserWithTreeCount
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.email, users.avatar, users.role, users.created_at, COUNT(trees.id) AS trees_count").
		Joins("LEFT JOIN trees ON trees.created_by = users.id").
		Group("users.id").
		Order("users.created_at DESC, users.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return rows, nil
}

// Delete removes the target account after consulting the policy. Trees owned
// by the account are orphaned (created_by set to NULL) in the same
// transaction, never deleted. Admins cannot delete themselves.
func (s *UserStore) Delete(ctx context.Context, actor session.Identity, targetID uint) error {
	if !policy.CanDeleteUser(actor, targetID) {
		if actor.UserID == targetID {
			return fmt.Errorf("%w: cannot delete your own account", apperrors.ErrValidation)
		}
		return apperrors.ErrForbidden
	}

	var target models.User
	if err := s.db.WithContext(ctx).First(&target, targetID).Error; err != nil {
		return wrapDBError(err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tree{}).
			Where("created_by = ?", targetID).
			Update("created_by", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, targetID).Error
	})
	return wrapDBError(err)
}
