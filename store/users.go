package store

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Luismorlan/newsdash/model"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

// CreateUser registers username and returns its id. A taken username yields
// ErrUsernameTaken and leaves the existing user untouched.
func (s *Store) CreateUser(username string, password string) (uint, error) {
	if username == "" || password == "" {
		return 0, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "fail to hash password")
	}

	user := model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.timestamp(),
	}
	err = s.db.Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || (err != nil && s.usernameExists(username)) {
		Logger.Log.WithField("username", username).Warnln("username already exists")
		return 0, ErrUsernameTaken
	}
	if err != nil {
		return 0, pkgerrors.Wrap(err, "fail to create user")
	}
	return user.Id, nil
}

func (s *Store) usernameExists(username string) bool {
	var count int64
	s.db.Model(&model.User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// GetUser returns the user without its password hash.
func (s *Store) GetUser(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundOr(err)
	}
	user.PasswordHash = ""
	return &user, nil
}

func (s *Store) GetUserById(userId uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userId).Error; err != nil {
		return nil, notFoundOr(err)
	}
	user.PasswordHash = ""
	return &user, nil
}

// VerifyUser reports whether password matches the one of username. Unknown
// users do not verify.
func (s *Store) VerifyUser(username string, password string) (bool, error) {
	var user model.User
	err := s.db.Select("id", "password_hash").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(err, "fail to load user")
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return err == nil, err
}

// DeleteUser removes the user together with its preferences, history and
// feedback.
func (s *Store) DeleteUser(userId uint) error {
	res := s.db.Delete(&model.User{}, userId)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "fail to delete user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
