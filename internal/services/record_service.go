package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/pkg/logger"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

// RecordService handles the exercise log inside a group: listing with
// author/sport filters, creation by an existing participant, and single-record
// lookup.
type RecordService struct {
	DB       *gorm.DB
	Identity *IdentityService
}

func NewRecordService(db *gorm.DB, identity *IdentityService) *RecordService {
	return &RecordService{DB: db, Identity: identity}
}

type ListRecordsParams struct {
	Pagination utils.PaginationParams
	Order      string // asc | desc
	OrderBy    string // createdAt | time
	Search     string // author nickname substring
	Sport      string
}

func (s *RecordService) List(groupID uuid.UUID, params ListRecordsParams) ([]RecordView, int64, error) {
	if err := s.groupExists(groupID); err != nil {
		return nil, 0, err
	}

	query := s.DB.Model(&models.ExerciseRecord{}).
		Joins("JOIN users ON users.id = exercise_records.user_id").
		Where("exercise_records.group_id = ?", groupID)

	if sport := strings.TrimSpace(params.Sport); sport != "" {
		query = query.Where("exercise_records.sport = ?", sport)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("users.nickname LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := "exercise_records.created_at"
	if params.OrderBy == "time" {
		sortField = "exercise_records.duration"
	}
	sortOrder := "DESC"
	if params.Order == "asc" {
		sortOrder = "ASC"
	}

	var records []models.ExerciseRecord
	err := utils.ApplyPagination(query, params.Pagination).
		Order(sortField + " " + sortOrder).
		Preload("User").
		Preload("Photos").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]RecordView, 0, len(records))
	for i := range records {
		views = append(views, recordView(&records[i]))
	}
	return views, total, nil
}

type CreateRecordInput struct {
	ExerciseType   models.ExerciseType
	Description    *string
	Time           int
	Distance       float64
	Photos         []string
	AuthorNickname string
	AuthorPassword string
}

// Create logs a record for an existing participant. Unlike Join, it never
// creates a user: logging exercise in a group you have not joined is an
// error.
func (s *RecordService) Create(groupID uuid.UUID, input CreateRecordInput) (*RecordView, error) {
	if err := s.groupExists(groupID); err != nil {
		return nil, err
	}

	user, err := s.Identity.Verify(s.DB, input.AuthorNickname, input.AuthorPassword)
	if err != nil {
		return nil, err
	}

	var membership int64
	err = s.DB.Model(&models.Participant{}).
		Where("group_id = ? AND user_id = ?", groupID, user.ID).
		Count(&membership).Error
	if err != nil {
		return nil, err
	}
	if membership == 0 {
		return nil, ErrParticipantNotFound
	}

	record := models.ExerciseRecord{
		Sport:       input.ExerciseType,
		Description: input.Description,
		Duration:    input.Time,
		Distance:    input.Distance,
		UserID:      user.ID,
		GroupID:     groupID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, url := range input.Photos {
			photo := models.Photo{URL: url, ExerciseRecordID: record.ID}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithUser(user.ID.String(), "record_created", map[string]interface{}{
		"group_id":  groupID.String(),
		"record_id": record.ID.String(),
		"sport":     string(input.ExerciseType),
	})

	return s.Get(groupID, record.ID)
}

func (s *RecordService) Get(groupID, recordID uuid.UUID) (*RecordView, error) {
	var record models.ExerciseRecord
	err := s.DB.
		Preload("User").
		Preload("Photos").
		First(&record, "id = ? AND group_id = ?", recordID, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	view := recordView(&record)
	return &view, nil
}

func (s *RecordService) groupExists(groupID uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&models.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrGroupNotFound
	}
	return nil
}
