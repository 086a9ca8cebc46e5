package store

import (
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/Luismorlan/newsdash/model"
)

const feedbackSummaryQuery = `
SELECT
	COUNT(*) AS total_feedback,
	AVG(rating) AS average_rating,
	COALESCE(SUM(CASE WHEN feedback = ? THEN 1 ELSE 0 END), 0) AS helpful_count,
	COALESCE(SUM(CASE WHEN feedback = ? THEN 1 ELSE 0 END), 0) AS not_helpful_count
FROM article_feedback
WHERE article_url = ?`

// AddArticleFeedback appends a feedback row, feedback and rating are optional.
func (s *Store) AddArticleFeedback(userId uint, url string, feedback *string, rating *int) error {
	if url == "" {
		return ErrMissingUrl
	}
	row := model.ArticleFeedback{
		UserID:     userId,
		ArticleUrl: url,
		Feedback:   feedback,
		Rating:     rating,
		Timestamp:  s.timestamp(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return pkgerrors.Wrap(notFoundOr(err), "fail to add article feedback")
	}
	return nil
}

// GetArticleFeedback aggregates the feedback of url. Without rows the counts
// are zero and AverageRating is nil, as it is when no row has a rating.
func (s *Store) GetArticleFeedback(url string) (model.FeedbackSummary, error) {
	var summary model.FeedbackSummary
	err := s.db.Raw(feedbackSummaryQuery, model.FeedbackHelpful, model.FeedbackNotHelpful, url).
		Scan(&summary).Error
	if err != nil {
		return model.FeedbackSummary{}, pkgerrors.Wrap(err, "fail to aggregate article feedback")
	}
	return summary, nil
}

// GetUserFeedback returns every feedback row of userId, oldest first.
func (s *Store) GetUserFeedback(userId uint) ([]model.ArticleFeedback, error) {
	feedback := []model.ArticleFeedback{}
	err := s.db.Where("user_id = ?", userId).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order("id ASC").
		Find(&feedback).Error
	if err != nil {
		return []model.ArticleFeedback{}, pkgerrors.Wrap(err, "fail to get user feedback")
	}
	return feedback, nil
}
