package collector

import (
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultSortBy   = "publishedAt"
)

// HeadlinesQuery filters the top headlines endpoint.
type HeadlinesQuery struct {
	Country  string `url:"country,omitempty"`
	Category string `url:"category,omitempty"`
	Q        string `url:"q,omitempty"`
	PageSize int    `url:"pageSize"`
	Page     int    `url:"page"`
}

// SearchQuery filters the everything endpoint. From and To are sent as
// RFC 3339 timestamps.
type SearchQuery struct {
	Q        string     `url:"q"`
	From     *time.Time `url:"from,omitempty"`
	To       *time.Time `url:"to,omitempty"`
	Language string     `url:"language"`
	SortBy   string     `url:"sortBy"`
	PageSize int        `url:"pageSize"`
	Page     int        `url:"page"`
}

// SourcesQuery filters the sources endpoint.
type SourcesQuery struct {
	Category string `url:"category,omitempty"`
	Language string `url:"language"`
	Country  string `url:"country,omitempty"`
}

func normalizePaging(pageSize, page int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, page
}

func (q HeadlinesQuery) normalized() HeadlinesQuery {
	q.PageSize, q.Page = normalizePaging(q.PageSize, q.Page)
	return q
}

func (q SearchQuery) normalized(defaultLanguage string) SearchQuery {
	q.PageSize, q.Page = normalizePaging(q.PageSize, q.Page)
	if q.Language == "" {
		q.Language = defaultLanguage
	}
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.From != nil {
		from := q.From.UTC()
		q.From = &from
	}
	if q.To != nil {
		to := q.To.UTC()
		q.To = &to
	}
	return q
}

func (q SourcesQuery) normalized(defaultLanguage string) SourcesQuery {
	if q.Language == "" {
		q.Language = defaultLanguage
	}
	return q
}
