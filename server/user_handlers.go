package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/server/middlewares"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userResponse is a user without anything secret.
type userResponse struct {
	Id        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type preferencesRequest struct {
	Categories []string `json:"categories"`
	Countries  []string `json:"countries"`
	Language   string   `json:"language"`
	Sentiment  string   `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
}

type historyRequest struct {
	Url       string     `json:"url" binding:"required"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	Timestamp *time.Time `json:"timestamp"`
}

type feedbackRequest struct {
	UserId   uint    `json:"user_id" binding:"required"`
	Url      string  `json:"url" binding:"required"`
	Feedback *string `json:"feedback"`
	Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

func toUserResponse(user *model.User) (userResponse, error) {
	var res userResponse
	err := copier.Copy(&res, user)
	return res, err
}

func (s *Server) respondUser(c *gin.Context, status int, user *model.User) {
	res, err := toUserResponse(user)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(status, res)
}

func (s *Server) createUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	id, err := s.deps.Store.CreateUser(req.Username, req.Password)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	user, err := s.deps.Store.GetUserById(id)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	s.respondUser(c, http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	ok, err := s.deps.Store.VerifyUser(req.Username, req.Password)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		abortWithError(c, errors.New("invalid username or password"), http.StatusUnauthorized)
		return
	}
	user, err := s.deps.Store.GetUser(req.Username)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	s.respondUser(c, http.StatusOK, user)
}

func (s *Server) getUser(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	user, err := s.deps.Store.GetUserById(userId)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	s.respondUser(c, http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	if err := s.deps.Store.DeleteUser(userId); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getPreferences(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	prefs, err := s.deps.Store.GetUserPreferences(userId)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) updatePreferences(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	err := s.deps.Store.UpdateUserPreferences(userId, model.UserPreferences{
		Categories: model.NewStringSet(req.Categories...),
		Countries:  model.NewStringSet(req.Countries...),
		Language:   req.Language,
		Sentiment:  req.Sentiment,
	})
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	s.getPreferences(c)
}

func (s *Server) getHistory(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		abortBadRequest(c, errors.New("invalid limit"))
		return
	}
	history, err := s.deps.Store.GetReadingHistory(userId, limit)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// addHistory records that a user opened an article. The entry is stored
// before the response, subscribers are then notified with an ArticleReadEvent.
func (s *Server) addHistory(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	entry := model.ReadingHistory{
		ArticleUrl: req.Url,
		Title:      req.Title,
		Category:   req.Category,
	}
	if req.Timestamp != nil {
		entry.ReadTimestamp = req.Timestamp.UTC()
	} else {
		entry.ReadTimestamp = time.Now().UTC()
	}
	if err := s.deps.Store.AddReadingHistory(userId, entry); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	s.notifyArticleRead(c, userId, entry)
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

// notifyArticleRead publishes a stored history entry to the event bus. The
// entry is already persisted, a failed publish is only logged.
func (s *Server) notifyArticleRead(c *gin.Context, userId uint, entry model.ReadingHistory) {
	if s.deps.Publisher == nil {
		return
	}
	requestId := c.GetString(middlewares.RequestIdKey)
	logger := Logger.Log.WithFields(logrus.Fields{"user_id": userId, "request_id": requestId})

	payload, err := json.Marshal(model.ArticleReadEvent{UserID: userId, Entry: entry})
	if err != nil {
		logger.Errorln("fail to encode article read event: ", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(middlewares.RequestIdKey, requestId)
	if err := s.deps.Publisher.Publish(model.TopicArticleRead, msg); err != nil {
		logger.Errorln("fail to publish article read event: ", err)
	}
}

func (s *Server) addFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if req.Feedback == nil && req.Rating == nil {
		abortBadRequest(c, errors.New("feedback or rating is required"))
		return
	}
	if req.Feedback != nil && *req.Feedback != model.FeedbackHelpful && *req.Feedback != model.FeedbackNotHelpful {
		abortBadRequest(c, errors.New("feedback must be Helpful or Not Helpful"))
		return
	}
	if err := s.deps.Store.AddArticleFeedback(req.UserId, req.Url, req.Feedback, req.Rating); err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

func (s *Server) getFeedback(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		abortBadRequest(c, errors.New("url is required"))
		return
	}
	summary, err := s.deps.Store.GetArticleFeedback(url)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, summary)
}
