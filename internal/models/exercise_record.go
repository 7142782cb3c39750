package models

import "github.com/google/uuid"

type ExerciseType string

const (
	ExerciseRun  ExerciseType = "run"
	ExerciseBike ExerciseType = "bike"
	ExerciseSwim ExerciseType = "swim"
)

func (e ExerciseType) Valid() bool {
	switch e {
	case ExerciseRun, ExerciseBike, ExerciseSwim:
		return true
	default:
		return false
	}
}

// ExerciseRecord belongs to one participant-membership context and is removed
// when that user leaves the group. Duration is in seconds, distance in meters.
type ExerciseRecord struct {
	BaseModel
	Sport       ExerciseType `json:"sport" gorm:"type:varchar(20);not null;index"`
	Description *string      `json:"description,omitempty" gorm:"type:text"`
	Duration    int          `json:"duration" gorm:"not null;default:0"`
	Distance    float64      `json:"distance" gorm:"not null;default:0"`
	UserID      uuid.UUID    `json:"userID" gorm:"type:uuid;not null;index"`
	GroupID     uuid.UUID    `json:"groupID" gorm:"type:uuid;not null;index"`
	User        User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Photos      []Photo      `json:"photos,omitempty" gorm:"foreignKey:ExerciseRecordID;constraint:OnDelete:CASCADE"`
}
