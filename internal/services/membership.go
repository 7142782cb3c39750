package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/pkg/logger"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

// MembershipService enforces the one-participant-per-nickname-per-group rule
// and keeps a member's records and photos tied to their membership: leaving a
// group removes exactly that member's data, nothing else.
type MembershipService struct {
	DB       *gorm.DB
	Identity *IdentityService
	Groups   *GroupService
}

func NewMembershipService(db *gorm.DB, identity *IdentityService, groups *GroupService) *MembershipService {
	return &MembershipService{DB: db, Identity: identity, Groups: groups}
}

// Join adds a nickname to a group, lazily creating the user when the nickname
// is new. The nickname-taken check fires before the password check so a
// duplicate join is a conflict regardless of credentials.
func (s *MembershipService) Join(groupID uuid.UUID, nickname, password string) (*GroupDetail, error) {
	if err := s.groupExists(groupID); err != nil {
		return nil, err
	}

	taken, err := s.nicknameInGroup(groupID, nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNicknameTaken
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.Identity.Resolve(tx, nickname, password)
		if err != nil {
			return err
		}

		participant := models.Participant{UserID: user.ID, GroupID: groupID}
		if err := tx.Create(&participant).Error; err != nil {
			// Lost the race against a concurrent join: the unique index on
			// (user_id, group_id) rejected the second row.
			return ErrNicknameTaken
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("participant_joined", map[string]interface{}{
		"group_id": groupID.String(),
		"nickname": nickname,
	})

	return s.Groups.Get(groupID)
}

// Leave verifies the member's password and then deletes their photos, their
// exercise records in this group, and the participant row, all in one
// transaction.
func (s *MembershipService) Leave(groupID uuid.UUID, nickname, password string) error {
	var user models.User
	err := s.DB.First(&user, "nickname = ?", nickname).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.groupExists(groupID); err != nil {
		return err
	}

	var participant models.Participant
	err = s.DB.First(&participant, "group_id = ? AND user_id = ?", groupID, user.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return ErrPasswordMismatch
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var recordIDs []uuid.UUID
		err := tx.Model(&models.ExerciseRecord{}).
			Where("group_id = ? AND user_id = ?", groupID, user.ID).
			Pluck("id", &recordIDs).Error
		if err != nil {
			return err
		}

		if len(recordIDs) > 0 {
			if err := tx.Where("exercise_record_id IN ?", recordIDs).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", recordIDs).Delete(&models.ExerciseRecord{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Participant{}, "id = ?", participant.ID).Error
	})
	if err != nil {
		return err
	}

	logger.InfoWithUser(user.ID.String(), "participant_left", map[string]interface{}{
		"group_id": groupID.String(),
		"nickname": nickname,
	})
	return nil
}

func (s *MembershipService) groupExists(groupID uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (s *MembershipService) nicknameInGroup(groupID uuid.UUID, nickname string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Participant{}).
		Joins("JOIN users ON users.id = participants.user_id").
		Where("participants.group_id = ? AND users.nickname = ?", groupID, nickname).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
