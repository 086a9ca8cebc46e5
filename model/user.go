package model

import "time"

/*

User is a registered dashboard user

Id: primary key, owns every per-user row below
Username: unique login name
PasswordHash: bcrypt hash, the plaintext password is never stored
Preferences: "has-one" relation, deleted with the user
History: reading history, "has-many" relation, deleted with the user
Feedback: article feedback, "has-many" relation, deleted with the user
*/

type User struct {
	Id           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`

	Preferences *UserPreferences  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	History     []ReadingHistory  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Feedback    []ArticleFeedback `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
