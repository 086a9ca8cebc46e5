// Package server exposes news, users, feedback, analytics and nlp operations
// over http.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Luismorlan/newsdash/analytics"
	"github.com/Luismorlan/newsdash/collector"
	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/nlp"
	"github.com/Luismorlan/newsdash/server/middlewares"
	"github.com/Luismorlan/newsdash/store"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

var errNewsUnavailable = errors.New("news api is not configured")

type NewsSource interface {
	GetTopHeadlines(ctx context.Context, q collector.HeadlinesQuery) ([]model.Article, error)
	SearchEverything(ctx context.Context, q collector.SearchQuery) ([]model.Article, error)
	GetSources(ctx context.Context, q collector.SourcesQuery) ([]model.NewsSource, error)
}

type FeedSource interface {
	FetchFeed(ctx context.Context, url string, category string) ([]model.Article, error)
}

type TextService interface {
	ComputeTextSimilarity(a, b string) (float64, error)
	TranslateText(ctx context.Context, text string, target string) (string, error)
}

// Dependencies of the api. News may be nil when no api key is configured,
// Publisher may be nil in which case no article read events are published.
type Dependencies struct {
	News      NewsSource
	Feeds     FeedSource
	Store     *store.Store
	Analytics *analytics.Analytics
	Text      TextService
	Publisher message.Publisher
}

type Server struct {
	deps Dependencies
}

func New(deps Dependencies) *Server {
	return &Server{deps: deps}
}

// Router builds the gin engine serving every route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestId(), middlewares.AccessLog())
	router.Use(cors.Default())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	api.GET("/headlines", s.getHeadlines)
	api.GET("/search", s.searchEverything)
	api.GET("/sources", s.getSources)
	api.GET("/feed", s.getFeed)

	api.POST("/users", s.createUser)
	api.POST("/login", s.login)
	api.GET("/users/:id", s.getUser)
	api.DELETE("/users/:id", s.deleteUser)
	api.GET("/users/:id/preferences", s.getPreferences)
	api.PUT("/users/:id/preferences", s.updatePreferences)
	api.GET("/users/:id/history", s.getHistory)
	api.POST("/users/:id/history", s.addHistory)
	api.GET("/users/:id/analytics/reading", s.getReadingAnalytics)
	api.GET("/users/:id/analytics/feedback", s.getFeedbackAnalytics)

	api.POST("/feedback", s.addFeedback)
	api.GET("/feedback", s.getFeedback)

	api.POST("/analytics/:chart", s.articleChart)

	api.POST("/nlp/similarity", s.similarity)
	api.POST("/nlp/translate", s.translate)
	return router
}

// statusOf maps domain errors to a status code, fallback for all others.
func statusOf(err error, fallback int) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, analytics.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, store.ErrMissingUrl),
		errors.Is(err, analytics.ErrUnknownChart),
		errors.Is(err, nlp.ErrNoVocabulary):
		return http.StatusBadRequest
	case errors.Is(err, errNewsUnavailable),
		errors.Is(err, collector.ErrMissingApiKey),
		errors.Is(err, nlp.ErrNoTranslator):
		return http.StatusServiceUnavailable
	default:
		return fallback
	}
}

func abortWithError(c *gin.Context, err error, fallback int) {
	c.Error(err)
	c.AbortWithStatusJSON(statusOf(err, fallback), gin.H{"msg": err.Error()})
}

func abortBadRequest(c *gin.Context, err error) {
	abortWithError(c, err, http.StatusBadRequest)
}

func userIdParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		abortBadRequest(c, errors.New("invalid user id"))
		return 0, false
	}
	return uint(id), true
}
