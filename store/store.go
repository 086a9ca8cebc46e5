// Package store persists users, their preferences, reading history and
// article feedback, and the enriched article cache. Every operation is a
// single statement, there are no cross table transactions.
package store

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 50
	ArticleCacheTTL     = 24 * time.Hour
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("username and password are required")
	ErrMissingUrl         = errors.New("article url is required")
)

type Store struct {
	db         *gorm.DB
	now        func() time.Time
	bcryptCost int
	cacheTTL   time.Duration
}

type StoreOption func(*Store)

// WithClock replaces time.Now, timestamps are always stored in UTC.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithBcryptCost(cost int) StoreOption {
	return func(s *Store) { s.bcryptCost = cost }
}

// WithArticleCacheTTL sets how long a cached article stays valid. Non
// positive values keep ArticleCacheTTL.
func WithArticleCacheTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func New(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{db: db, now: time.Now, bcryptCost: bcrypt.DefaultCost, cacheTTL: ArticleCacheTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// notFoundOr maps gorm's record not found and foreign key errors of a missing
// user to ErrNotFound.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrNotFound
	}
	return err
}
