package models

import "github.com/google/uuid"

type BadgeType string

const (
	BadgeParticipation10 BadgeType = "PARTICIPATION_10"
	BadgeRecord100       BadgeType = "RECORD_100"
	BadgeLike100         BadgeType = "LIKE_100"
)

type Group struct {
	BaseModel
	Name              string           `json:"name" gorm:"type:varchar(150);not null"`
	Description       *string          `json:"description,omitempty" gorm:"type:text"`
	PhotoURL          *string          `json:"photoUrl,omitempty" gorm:"type:text"`
	GoalRep           int              `json:"goalRep" gorm:"not null;default:0"`
	DiscordWebhookURL *string          `json:"discordWebhookUrl,omitempty" gorm:"type:text"`
	DiscordInviteURL  *string          `json:"discordInviteUrl,omitempty" gorm:"type:text"`
	OwnerID           uuid.UUID        `json:"ownerID" gorm:"type:uuid;not null;index"`
	Owner             User             `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Tags              []Tag            `json:"tags,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Participants      []Participant    `json:"participants,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Records           []ExerciseRecord `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Recommends        []GroupRecommend `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// Badges derives the achievement flags from aggregate counts. They are never
// stored; thresholds follow the frontend badge legend.
func Badges(participantCount, recordCount, likeCount int64) []BadgeType {
	badges := []BadgeType{}
	if participantCount >= 10 {
		badges = append(badges, BadgeParticipation10)
	}
	if recordCount >= 100 {
		badges = append(badges, BadgeRecord100)
	}
	if likeCount >= 100 {
		badges = append(badges, BadgeLike100)
	}
	return badges
}
