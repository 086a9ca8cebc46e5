package model

// TopicArticleRead carries ArticleReadEvent payloads on the event bus.
const TopicArticleRead = "article_read"

// ArticleReadEvent is published when a user opens an article and persisted
// into the reading history by a consumer.
type ArticleReadEvent struct {
	UserID uint           `json:"user_id"`
	Entry  ReadingHistory `json:"entry"`
}
