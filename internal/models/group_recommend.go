package models

import "github.com/google/uuid"

// GroupRecommend is a like on a group, at most one per (group, user).
// Duplicate likes are rejected at the constraint, not absorbed.
type GroupRecommend struct {
	BaseModel
	GroupID uuid.UUID `json:"groupID" gorm:"type:uuid;not null;index;uniqueIndex:idx_recommend_group_user"`
	UserID  uuid.UUID `json:"userID" gorm:"type:uuid;not null;index;uniqueIndex:idx_recommend_group_user"`
}
