package models

import "github.com/google/uuid"

// Participant is a (user, group) membership. The composite unique index is
// what keeps two concurrent joins for the same nickname from both succeeding.
type Participant struct {
	BaseModel
	UserID  uuid.UUID `json:"userID" gorm:"type:uuid;not null;index;uniqueIndex:idx_participant_user_group"`
	GroupID uuid.UUID `json:"groupID" gorm:"type:uuid;not null;index;uniqueIndex:idx_participant_user_group"`
	User    User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Group   Group     `json:"group,omitempty" gorm:"foreignKey:GroupID"`
}
