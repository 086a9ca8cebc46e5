package server

import (
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/Luismorlan/newsdash/collector"
	"github.com/Luismorlan/newsdash/model"
)

type headlinesRequest struct {
	Country  string `form:"country"`
	Category string `form:"category"`
	Q        string `form:"q"`
	PageSize int    `form:"page_size" binding:"omitempty,min=0"`
	Page     int    `form:"page" binding:"omitempty,min=0"`
}

type searchRequest struct {
	Q        string `form:"q" binding:"required"`
	FromDate string `form:"from"`
	ToDate   string `form:"to"`
	Language string `form:"language"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=relevancy popularity publishedAt"`
	PageSize int    `form:"page_size" binding:"omitempty,min=0"`
	Page     int    `form:"page" binding:"omitempty,min=0"`
}

type sourcesRequest struct {
	Category string `form:"category"`
	Language string `form:"language"`
	Country  string `form:"country"`
}

type feedRequest struct {
	Url      string `form:"url" binding:"required,url"`
	Category string `form:"category"`
}

type articlesResponse struct {
	Total    int             `json:"total"`
	Articles []model.Article `json:"articles"`
}

func newArticlesResponse(articles []model.Article) articlesResponse {
	if articles == nil {
		articles = []model.Article{}
	}
	return articlesResponse{Total: len(articles), Articles: articles}
}

func (s *Server) getHeadlines(c *gin.Context) {
	if s.deps.News == nil {
		abortWithError(c, errNewsUnavailable, http.StatusServiceUnavailable)
		return
	}
	var req headlinesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	var q collector.HeadlinesQuery
	if err := copier.Copy(&q, &req); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}

	articles, err := s.deps.News.GetTopHeadlines(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, newArticlesResponse(articles))
}

func (s *Server) searchEverything(c *gin.Context) {
	if s.deps.News == nil {
		abortWithError(c, errNewsUnavailable, http.StatusServiceUnavailable)
		return
	}
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	var q collector.SearchQuery
	if err := copier.Copy(&q, &req); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	var err error
	if q.From, err = parseOptionalTime(req.FromDate); err != nil {
		abortBadRequest(c, errors.Wrap(err, "invalid from"))
		return
	}
	if q.To, err = parseOptionalTime(req.ToDate); err != nil {
		abortBadRequest(c, errors.Wrap(err, "invalid to"))
		return
	}

	articles, err := s.deps.News.SearchEverything(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, newArticlesResponse(articles))
}

func (s *Server) getSources(c *gin.Context) {
	if s.deps.News == nil {
		abortWithError(c, errNewsUnavailable, http.StatusServiceUnavailable)
		return
	}
	var req sourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	sources, err := s.deps.News.GetSources(c.Request.Context(), collector.SourcesQuery{
		Category: req.Category,
		Language: req.Language,
		Country:  req.Country,
	})
	if err != nil {
		abortWithError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (s *Server) getFeed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	articles, err := s.deps.Feeds.FetchFeed(c.Request.Context(), req.Url, req.Category)
	if err != nil {
		abortWithError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, newArticlesResponse(articles))
}

// parseOptionalTime accepts any layout dateparse knows, in UTC.
func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
