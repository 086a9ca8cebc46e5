package model

import "time"

// UserPreferences is one-to-one with User, upserted on UserID.
type UserPreferences struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Categories StringSet `json:"categories"`
	Countries  StringSet `json:"countries"`
	Language   string    `json:"language"`
	Sentiment  string    `json:"sentiment"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (UserPreferences) TableName() string { return "user_preferences" }
