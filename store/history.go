package store

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/Luismorlan/newsdash/model"
)

// AddReadingHistory appends entry to the history of userId. A zero
// ReadTimestamp is set to now.
func (s *Store) AddReadingHistory(userId uint, entry model.ReadingHistory) error {
	if entry.ArticleUrl == "" {
		return ErrMissingUrl
	}
	entry.Id = 0
	entry.UserID = userId
	if entry.ReadTimestamp.IsZero() {
		entry.ReadTimestamp = s.timestamp()
	} else {
		entry.ReadTimestamp = entry.ReadTimestamp.UTC()
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return pkgerrors.Wrap(notFoundOr(err), "fail to add reading history")
	}
	return nil
}

// GetReadingHistory returns the latest limit entries of userId, newest first.
// limit <= 0 means DefaultHistoryLimit.
func (s *Store) GetReadingHistory(userId uint, limit int) ([]model.ReadingHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	history := []model.ReadingHistory{}
	err := s.db.Where("user_id = ?", userId).
		Order("read_timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return []model.ReadingHistory{}, pkgerrors.Wrap(err, "fail to get reading history")
	}
	return history, nil
}
