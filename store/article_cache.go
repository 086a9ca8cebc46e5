package store

import (
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

// CacheArticle stores the enrichment of article, replacing a previous row of
// the same url and restarting its 24 hours.
func (s *Store) CacheArticle(article model.Article) error {
	if article.Url == "" {
		return ErrMissingUrl
	}
	row, err := model.NewArticleCache(article, s.timestamp())
	if err != nil {
		return pkgerrors.Wrap(err, "fail to encode article")
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		UpdateAll: true,
	}).Create(&row).Error
	return pkgerrors.Wrap(err, "fail to cache article")
}

// GetCachedArticle returns the cached row of url if it is younger than
// the article cache ttl, ErrNotFound otherwise.
func (s *Store) GetCachedArticle(url string) (*model.ArticleCache, error) {
	var row model.ArticleCache
	err := s.db.Where("url = ? AND cached_at > ?", url, s.timestamp().Add(-s.cacheTTL)).
		First(&row).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &row, nil
}

// CleanupOldCache deletes rows older than the article cache ttl and returns how
// many were deleted.
func (s *Store) CleanupOldCache() (int64, error) {
	res := s.db.Where("cached_at < ?", s.timestamp().Add(-s.cacheTTL)).Delete(&model.ArticleCache{})
	if res.Error != nil {
		return 0, pkgerrors.Wrap(res.Error, "fail to clean up article cache")
	}
	metrics.ArticleCacheSwept.Add(float64(res.RowsAffected))
	return res.RowsAffected, nil
}
