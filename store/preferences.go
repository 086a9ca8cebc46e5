package store

import (
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/Luismorlan/newsdash/model"
)

func (s *Store) GetUserPreferences(userId uint) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := s.db.Where("user_id = ?", userId).First(&prefs).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &prefs, nil
}

// UpdateUserPreferences creates or replaces the preferences of userId.
func (s *Store) UpdateUserPreferences(userId uint, prefs model.UserPreferences) error {
	prefs.UserID = userId
	prefs.Categories = model.NewStringSet(prefs.Categories...)
	prefs.Countries = model.NewStringSet(prefs.Countries...)
	prefs.UpdatedAt = s.timestamp()

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&prefs).Error
	if err != nil {
		return pkgerrors.Wrap(notFoundOr(err), "fail to update preferences")
	}
	return nil
}
