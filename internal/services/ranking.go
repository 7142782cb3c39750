package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

type RankDuration string

const (
	RankWeekly  RankDuration = "weekly"
	RankMonthly RankDuration = "monthly"
)

// RankingService aggregates exercise records inside the lookback window into
// per-member totals. The window's record set is loaded whole and reduced,
// sorted, and paged in memory; the totals are derived so the store cannot
// page them.
type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// WindowStart returns the start of day 7 or 30 days back. Anything other
// than monthly falls back to the weekly window.
func WindowStart(duration RankDuration, now time.Time) time.Time {
	days := 7
	if duration == RankMonthly {
		days = 30
	}
	from := now.AddDate(0, 0, -days)
	return time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
}

func (s *RankingService) Rank(groupID uuid.UUID, duration RankDuration, p utils.PaginationParams) ([]RankEntry, error) {
	var count int64
	if err := s.DB.Model(&models.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrGroupNotFound
	}

	from := WindowStart(duration, time.Now())

	var records []models.ExerciseRecord
	err := s.DB.
		Preload("User").
		Where("group_id = ? AND created_at >= ?", groupID, from).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	totals := map[uuid.UUID]*RankEntry{}
	order := []uuid.UUID{}
	for i := range records {
		record := &records[i]
		entry, ok := totals[record.UserID]
		if !ok {
			entry = &RankEntry{
				ParticipantID: record.UserID,
				Nickname:      record.User.Nickname,
			}
			totals[record.UserID] = entry
			order = append(order, record.UserID)
		}
		entry.RecordCount++
		entry.RecordTime += record.Duration
	}

	// Insertion order is the tie-break, so the sort must be stable.
	entries := make([]RankEntry, 0, len(order))
	for _, userID := range order {
		entries = append(entries, *totals[userID])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordTime > entries[j].RecordTime
	})

	return utils.Slice(entries, p), nil
}
