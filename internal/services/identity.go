package services

import (
	"errors"

	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

// IdentityService resolves a (nickname, password) pair to a user row.
// Nicknames are system-wide: reusing one requires the original password,
// an unused one is claimed by creating the user with a fresh hash.
type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// Resolve runs against tx so callers can fold user creation into the same
// transaction as the write that needs it.
func (s *IdentityService) Resolve(tx *gorm.DB, nickname, password string) (*models.User, error) {
	var user models.User
	err := tx.First(&user, "nickname = ?", nickname).Error
	if err == nil {
		if !utils.CheckPassword(password, user.PasswordHash) {
			return nil, ErrPasswordMismatch
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user = models.User{Nickname: nickname, PasswordHash: hash}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify looks up an existing user and checks the password, without the
// lazy-creation fallback.
func (s *IdentityService) Verify(tx *gorm.DB, nickname, password string) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, "nickname = ?", nickname).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrPasswordMismatch
	}
	return &user, nil
}
