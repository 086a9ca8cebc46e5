package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type similarityRequest struct {
	A string `json:"a" binding:"required"`
	B string `json:"b" binding:"required"`
}

type translateRequest struct {
	Text   string `json:"text" binding:"required"`
	Target string `json:"target" binding:"required"`
}

func (s *Server) similarity(c *gin.Context) {
	var req similarityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	score, err := s.deps.Text.ComputeTextSimilarity(req.A, req.B)
	if err != nil {
		abortWithError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"similarity": score})
}

func (s *Server) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	translated, err := s.deps.Text.TranslateText(c.Request.Context(), req.Text, req.Target)
	if err != nil {
		abortWithError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"translated_text": translated})
}
