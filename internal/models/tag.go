package models

import "github.com/google/uuid"

// Tag rows belong to exactly one group. An update that carries a tag list
// replaces the whole set, so rows are cheap and never shared.
type Tag struct {
	BaseModel
	Name    string    `json:"name" gorm:"type:varchar(100);not null"`
	GroupID uuid.UUID `json:"groupID" gorm:"type:uuid;not null;index"`
}
