package server

import (
	"bytes"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/Luismorlan/newsdash/analytics"
	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/render"
)

const (
	formatHtml   = "html"
	htmlMimeType = "text/html; charset=utf-8"
)

type articlesRequest struct {
	Articles []model.Article `json:"articles"`
}

func wantsHtml(c *gin.Context) bool {
	return c.Query("format") == formatHtml
}

func (s *Server) articleChart(c *gin.Context) {
	var req articlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	chart, err := s.deps.Analytics.ArticleChart(c.Param("chart"), req.Articles)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	if !wantsHtml(c) {
		c.JSON(http.StatusOK, chart)
		return
	}
	var buf bytes.Buffer
	if err := render.Render(chart, &buf); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, htmlMimeType, buf.Bytes())
}

func (s *Server) getReadingAnalytics(c *gin.Context) {
	s.userCharts(c, "Reading Patterns", s.deps.Analytics.UserReadingPatterns)
}

func (s *Server) getFeedbackAnalytics(c *gin.Context) {
	s.userCharts(c, "Feedback Analysis", s.deps.Analytics.FeedbackAnalysis)
}

func (s *Server) userCharts(c *gin.Context, title string, build func(uint) (map[string]*analytics.Chart, error)) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	charts, err := build(userId)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	if !wantsHtml(c) {
		c.JSON(http.StatusOK, gin.H{"charts": charts})
		return
	}

	names := make([]string, 0, len(charts))
	for name := range charts {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]*analytics.Chart, 0, len(names))
	for _, name := range names {
		list = append(list, charts[name])
	}
	var buf bytes.Buffer
	if err := render.RenderPage(title, list, &buf); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, htmlMimeType, buf.Bytes())
}
