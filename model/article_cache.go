package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ArticleCache keeps the enrichment of an article for a day so that the
// article page is not downloaded and summarized again.
type ArticleCache struct {
	Url           string         `gorm:"primaryKey" json:"url"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Summary       string         `json:"summary"`
	Sentiment     string         `json:"sentiment"`
	Keywords      datatypes.JSON `json:"keywords"`
	NamedEntities datatypes.JSON `json:"named_entities"`
	CachedAt      time.Time      `gorm:"index" json:"cached_at"`
}

func (ArticleCache) TableName() string { return "article_cache" }

// NewArticleCache snapshots the enrichment of article at cachedAt.
func NewArticleCache(article Article, cachedAt time.Time) (ArticleCache, error) {
	keywords := article.Keywords
	if keywords == nil {
		keywords = []Keyword{}
	}
	entities := article.NamedEntities
	if entities == nil {
		entities = []NamedEntity{}
	}
	keywordsJson, err := json.Marshal(keywords)
	if err != nil {
		return ArticleCache{}, err
	}
	entitiesJson, err := json.Marshal(entities)
	if err != nil {
		return ArticleCache{}, err
	}

	content := article.Content
	if content == "" {
		content = article.Description
	}
	summary := ""
	if article.Summary != nil {
		summary = *article.Summary
	}
	return ArticleCache{
		Url:           article.Url,
		Title:         article.Title,
		Content:       content,
		Summary:       summary,
		Sentiment:     string(article.Sentiment),
		Keywords:      datatypes.JSON(keywordsJson),
		NamedEntities: datatypes.JSON(entitiesJson),
		CachedAt:      cachedAt,
	}, nil
}

// ApplyTo copies the cached enrichment onto article. An empty summary leaves
// the article without one.
func (c ArticleCache) ApplyTo(article *Article) error {
	keywords := []Keyword{}
	if len(c.Keywords) > 0 {
		if err := json.Unmarshal(c.Keywords, &keywords); err != nil {
			return err
		}
	}
	entities := []NamedEntity{}
	if len(c.NamedEntities) > 0 {
		if err := json.Unmarshal(c.NamedEntities, &entities); err != nil {
			return err
		}
	}

	article.Sentiment = Sentiment(c.Sentiment)
	if !article.Sentiment.IsValid() {
		article.Sentiment = SentimentNeutral
	}
	article.Keywords = keywords
	article.NamedEntities = entities
	if c.Summary != "" {
		summary := c.Summary
		article.Summary = &summary
	}
	return nil
}
