package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/pkg/logger"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

// GroupService owns the group lifecycle: creation with owner and tag set,
// mutable-field and tag-set updates, and password-verified deletion. All
// multi-table writes run inside one transaction so concurrent readers never
// observe a group without its owner participant or with half a tag set.
type GroupService struct {
	DB       *gorm.DB
	Identity *IdentityService
}

func NewGroupService(db *gorm.DB, identity *IdentityService) *GroupService {
	return &GroupService{DB: db, Identity: identity}
}

type CreateGroupInput struct {
	Name              string
	Description       *string
	PhotoURL          *string
	GoalRep           int
	DiscordWebhookURL *string
	DiscordInviteURL  *string
	Tags              []string
	OwnerNickname     string
	OwnerPassword     string
}

func (s *GroupService) Create(input CreateGroupInput) (*GroupDetail, error) {
	var groupID uuid.UUID

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		owner, err := s.Identity.Resolve(tx, input.OwnerNickname, input.OwnerPassword)
		if err != nil {
			return err
		}

		group := models.Group{
			Name:              input.Name,
			Description:       input.Description,
			PhotoURL:          input.PhotoURL,
			GoalRep:           input.GoalRep,
			DiscordWebhookURL: input.DiscordWebhookURL,
			DiscordInviteURL:  input.DiscordInviteURL,
			OwnerID:           owner.ID,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		for _, name := range input.Tags {
			tag := models.Tag{Name: name, GroupID: group.ID}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}

		participant := models.Participant{UserID: owner.ID, GroupID: group.ID}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}

		groupID = group.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("group_created", map[string]interface{}{
		"group_id": groupID.String(),
		"name":     input.Name,
	})

	return s.Get(groupID)
}

// Get builds the full projection: owner, participant list, tag names, like
// count, and derived badges.
func (s *GroupService) Get(groupID uuid.UUID) (*GroupDetail, error) {
	return s.getWithDB(s.DB, groupID)
}

func (s *GroupService) getWithDB(db *gorm.DB, groupID uuid.UUID) (*GroupDetail, error) {
	var group models.Group
	err := db.
		Preload("Owner").
		Preload("Tags").
		Preload("Participants.User").
		First(&group, "id = ?", groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	var likeCount int64
	if err := db.Model(&models.GroupRecommend{}).Where("group_id = ?", groupID).Count(&likeCount).Error; err != nil {
		return nil, err
	}
	var recordCount int64
	if err := db.Model(&models.ExerciseRecord{}).Where("group_id = ?", groupID).Count(&recordCount).Error; err != nil {
		return nil, err
	}

	participants := make([]ParticipantView, 0, len(group.Participants))
	for i := range group.Participants {
		participants = append(participants, participantView(&group.Participants[i].User))
	}

	detail := &GroupDetail{
		ID:                group.ID,
		Name:              group.Name,
		Description:       group.Description,
		PhotoURL:          group.PhotoURL,
		GoalRep:           group.GoalRep,
		DiscordWebhookURL: group.DiscordWebhookURL,
		DiscordInviteURL:  group.DiscordInviteURL,
		LikeCount:         likeCount,
		Tags:              tagNames(group.Tags),
		Owner:             participantView(&group.Owner),
		Participants:      participants,
		Badges:            models.Badges(int64(len(group.Participants)), recordCount, likeCount),
		CreatedAt:         group.CreatedAt,
		UpdatedAt:         group.UpdatedAt,
	}
	return detail, nil
}

type ListGroupsParams struct {
	Pagination utils.PaginationParams
	Sort       string // latest | recommend | participants
	Search     string
}

// List pages the group catalog. Sorting by a derived count cannot be pushed
// into the store, so those sorts load the filtered set and page in memory;
// the default latest sort pages at the database.
func (s *GroupService) List(params ListGroupsParams) ([]GroupSummary, int64, error) {
	query := s.DB.Model(&models.Group{})
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	loader := query.
		Preload("Owner").
		Preload("Tags").
		Preload("Participants").
		Preload("Recommends")

	byDerivedCount := params.Sort == "recommend" || params.Sort == "participants"

	var groups []models.Group
	if byDerivedCount {
		if err := loader.Find(&groups).Error; err != nil {
			return nil, 0, err
		}
	} else {
		if err := utils.ApplyPagination(loader.Order("created_at DESC"), params.Pagination).Find(&groups).Error; err != nil {
			return nil, 0, err
		}
	}

	recordCounts, err := s.recordCountsByGroup()
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]GroupSummary, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		participantCount := int64(len(group.Participants))
		likeCount := int64(len(group.Recommends))
		summaries = append(summaries, GroupSummary{
			ID:               group.ID,
			Name:             group.Name,
			Nickname:         group.Owner.Nickname,
			PhotoURL:         group.PhotoURL,
			Badges:           models.Badges(participantCount, recordCounts[group.ID], likeCount),
			Tags:             tagNames(group.Tags),
			GoalRep:          group.GoalRep,
			RecommendCount:   likeCount,
			ParticipantCount: participantCount,
			CreatedAt:        group.CreatedAt,
		})
	}

	if byDerivedCount {
		sort.SliceStable(summaries, func(i, j int) bool {
			if params.Sort == "recommend" {
				return summaries[i].RecommendCount > summaries[j].RecommendCount
			}
			return summaries[i].ParticipantCount > summaries[j].ParticipantCount
		})
		summaries = utils.Slice(summaries, params.Pagination)
	}

	return summaries, total, nil
}

func (s *GroupService) recordCountsByGroup() (map[uuid.UUID]int64, error) {
	type row struct {
		GroupID uuid.UUID
		Count   int64
	}
	var rows []row
	err := s.DB.Model(&models.ExerciseRecord{}).
		Select("group_id, COUNT(*) AS count").
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupID] = r.Count
	}
	return counts, nil
}

type UpdateGroupInput struct {
	Name              *string
	Description       *string
	PhotoURL          *string
	GoalRep           *int
	DiscordWebhookURL *string
	DiscordInviteURL  *string
	Tags              *[]string
	OwnerNickname     *string
	OwnerPassword     string
}

func (s *GroupService) Update(groupID uuid.UUID, input UpdateGroupInput) (*GroupDetail, error) {
	var group models.Group
	err := s.DB.Preload("Owner").Preload("Tags").First(&group, "id = ?", groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if !utils.CheckPassword(input.OwnerPassword, group.Owner.PasswordHash) {
		return nil, ErrPasswordMismatch
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if input.Tags != nil {
			// Full replacement, not a diff: drop every existing tag row and
			// recreate from the submitted list.
			if err := tx.Where("group_id = ?", groupID).Delete(&models.Tag{}).Error; err != nil {
				return err
			}
			for _, name := range *input.Tags {
				tag := models.Tag{Name: name, GroupID: groupID}
				if err := tx.Create(&tag).Error; err != nil {
					return err
				}
			}
		}

		if input.OwnerNickname != nil && *input.OwnerNickname != group.Owner.Nickname {
			// Renames the user record itself, so the nickname changes in
			// every group this user belongs to.
			err := tx.Model(&models.User{}).
				Where("id = ?", group.OwnerID).
				Update("nickname", *input.OwnerNickname).Error
			if err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.PhotoURL != nil {
			updates["photo_url"] = *input.PhotoURL
		}
		if input.GoalRep != nil {
			updates["goal_rep"] = *input.GoalRep
		}
		if input.DiscordWebhookURL != nil {
			updates["discord_webhook_url"] = *input.DiscordWebhookURL
		}
		if input.DiscordInviteURL != nil {
			updates["discord_invite_url"] = *input.DiscordInviteURL
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Group{}).Where("id = ?", groupID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("group_updated", map[string]interface{}{
		"group_id": groupID.String(),
	})

	return s.Get(groupID)
}

// Delete removes the group and everything hanging off it. The dependent rows
// are deleted explicitly inside the transaction rather than trusting the
// store's FK cascade settings, so partial deletion is never observable.
func (s *GroupService) Delete(groupID uuid.UUID, ownerPassword string) error {
	var group models.Group
	err := s.DB.Preload("Owner").First(&group, "id = ?", groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	if !utils.CheckPassword(ownerPassword, group.Owner.PasswordHash) {
		return ErrPasswordMismatch
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var recordIDs []uuid.UUID
		err := tx.Model(&models.ExerciseRecord{}).
			Where("group_id = ?", groupID).
			Pluck("id", &recordIDs).Error
		if err != nil {
			return err
		}

		if len(recordIDs) > 0 {
			if err := tx.Where("exercise_record_id IN ?", recordIDs).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.ExerciseRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupRecommend{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", groupID).Error
	})
	if err != nil {
		return err
	}

	logger.Info("group_deleted", map[string]interface{}{
		"group_id": groupID.String(),
	})
	return nil
}
