package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/pkg/logger"
	"gorm.io/gorm"
)

// RecommendService toggles the unique (group, user) like row. Repeat calls
// are rejected, not absorbed: a second recommend is a conflict and an
// unrecommend without a row is a not-found.
type RecommendService struct {
	DB *gorm.DB
}

func NewRecommendService(db *gorm.DB) *RecommendService {
	return &RecommendService{DB: db}
}

func (s *RecommendService) Recommend(groupID, userID uuid.UUID) (int64, error) {
	if err := s.checkGroupAndUser(groupID, userID); err != nil {
		return 0, err
	}

	var existing int64
	err := s.DB.Model(&models.GroupRecommend{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&existing).Error
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, ErrAlreadyRecommended
	}

	recommend := models.GroupRecommend{GroupID: groupID, UserID: userID}
	if err := s.DB.Create(&recommend).Error; err != nil {
		// The unique index on (group_id, user_id) catches the race between
		// the existence check and the insert.
		return 0, ErrAlreadyRecommended
	}

	logger.InfoWithUser(userID.String(), "group_recommended", map[string]interface{}{
		"group_id": groupID.String(),
	})
	return s.count(groupID)
}

func (s *RecommendService) Unrecommend(groupID, userID uuid.UUID) (int64, error) {
	if err := s.checkGroupAndUser(groupID, userID); err != nil {
		return 0, err
	}

	var recommend models.GroupRecommend
	err := s.DB.First(&recommend, "group_id = ? AND user_id = ?", groupID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotRecommended
		}
		return 0, err
	}

	if err := s.DB.Delete(&models.GroupRecommend{}, "id = ?", recommend.ID).Error; err != nil {
		return 0, err
	}

	logger.InfoWithUser(userID.String(), "group_unrecommended", map[string]interface{}{
		"group_id": groupID.String(),
	})
	return s.count(groupID)
}

func (s *RecommendService) count(groupID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&models.GroupRecommend{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (s *RecommendService) checkGroupAndUser(groupID, userID uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrGroupNotFound
	}
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
