package model

import "time"

const (
	FeedbackHelpful    = "Helpful"
	FeedbackNotHelpful = "Not Helpful"
)

// ArticleFeedback is append-only, a user may rate the same article many
// times. Feedback and Rating are both optional.
type ArticleFeedback struct {
	Id         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	ArticleUrl string    `gorm:"index;not null" json:"url"`
	Feedback   *string   `json:"feedback"`
	Rating     *int      `json:"rating"`
	Timestamp  time.Time `json:"timestamp"`
}

func (ArticleFeedback) TableName() string { return "article_feedback" }

// FeedbackSummary is the aggregate of all feedback rows for one article.
type FeedbackSummary struct {
	TotalFeedback   int64    `json:"total_feedback"`
	AverageRating   *float64 `json:"average_rating"`
	HelpfulCount    int64    `json:"helpful_count"`
	NotHelpfulCount int64    `json:"not_helpful_count"`
}
