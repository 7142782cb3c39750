package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/models"
)

// Participant identity in responses is the user ID. The source data model
// also carries a membership-row ID, but every endpoint that names a
// participant (rank, record author, member list) resolves to the same user,
// so one ID space keeps the API consistent.
type ParticipantView struct {
	ID        uuid.UUID `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GroupDetail struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Description       *string            `json:"description,omitempty"`
	PhotoURL          *string            `json:"photoUrl,omitempty"`
	GoalRep           int                `json:"goalRep"`
	DiscordWebhookURL *string            `json:"discordWebhookUrl,omitempty"`
	DiscordInviteURL  *string            `json:"discordInviteUrl,omitempty"`
	LikeCount         int64              `json:"likeCount"`
	Tags              []string           `json:"tags"`
	Owner             ParticipantView    `json:"owner"`
	Participants      []ParticipantView  `json:"participants"`
	Badges            []models.BadgeType `json:"badges"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

type GroupSummary struct {
	ID               uuid.UUID          `json:"id"`
	Name             string             `json:"name"`
	Nickname         string             `json:"nickname"`
	PhotoURL         *string            `json:"photoUrl,omitempty"`
	Badges           []models.BadgeType `json:"badges"`
	Tags             []string           `json:"tags"`
	GoalRep          int                `json:"goalRep"`
	RecommendCount   int64              `json:"recommendCount"`
	ParticipantCount int64              `json:"participantCount"`
	CreatedAt        time.Time          `json:"createdAt"`
}

type RecordAuthor struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
}

type RecordView struct {
	ID           uuid.UUID           `json:"id"`
	ExerciseType models.ExerciseType `json:"exerciseType"`
	Description  *string             `json:"description,omitempty"`
	Time         int                 `json:"time"`
	Distance     float64             `json:"distance"`
	Photos       []string            `json:"photos"`
	Author       RecordAuthor        `json:"author"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type RankEntry struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Nickname      string    `json:"nickname"`
	RecordCount   int       `json:"recordCount"`
	RecordTime    int       `json:"recordTime"`
}

func participantView(u *models.User) ParticipantView {
	return ParticipantView{
		ID:        u.ID,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func recordView(r *models.ExerciseRecord) RecordView {
	photos := make([]string, 0, len(r.Photos))
	for _, photo := range r.Photos {
		photos = append(photos, photo.URL)
	}
	return RecordView{
		ID:           r.ID,
		ExerciseType: r.Sport,
		Description:  r.Description,
		Time:         r.Duration,
		Distance:     r.Distance,
		Photos:       photos,
		Author:       RecordAuthor{ID: r.User.ID, Nickname: r.User.Nickname},
		CreatedAt:    r.CreatedAt,
	}
}
