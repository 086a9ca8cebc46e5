package model

import "time"

// ReadingHistory is an append-only log of articles a user opened.
type ReadingHistory struct {
	Id            uint      `gorm:"primaryKey" json:"-"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	ArticleUrl    string    `gorm:"not null" json:"url"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	ReadTimestamp time.Time `gorm:"index" json:"timestamp"`
}

func (ReadingHistory) TableName() string { return "reading_history" }
