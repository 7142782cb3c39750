package models

// User carries the nickname identity shared across groups. There is no
// account system: a user exists from the moment a nickname first creates or
// joins a group, and the password only gates reuse of that nickname.
type User struct {
	BaseModel
	Nickname     string           `json:"nickname" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string           `json:"-" gorm:"type:text;not null"`
	Memberships  []Participant    `json:"-" gorm:"foreignKey:UserID"`
	Records      []ExerciseRecord `json:"-" gorm:"foreignKey:UserID"`
	Recommends   []GroupRecommend `json:"-" gorm:"foreignKey:UserID"`
	OwnedGroups  []Group          `json:"-" gorm:"foreignKey:OwnerID"`
}
