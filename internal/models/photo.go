package models

import "github.com/google/uuid"

type Photo struct {
	BaseModel
	URL              string    `json:"url" gorm:"type:text;not null"`
	ExerciseRecordID uuid.UUID `json:"exerciseRecordID" gorm:"type:uuid;not null;index"`
}
