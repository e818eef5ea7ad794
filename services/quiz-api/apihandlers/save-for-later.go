package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/quiz-framework/quiz-backend/pkg/apihelpers/middlewares"
	quizDB "github.com/quiz-framework/quiz-backend/pkg/db/quiz"
	jwthandling "github.com/quiz-framework/quiz-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *HttpEndpoints) AddSavedQuestionsAPI(rg *gin.RouterGroup) {
	savedGroup := rg.Group("/saved")
	savedGroup.Use(mw.GetAndValidateQuizUserJWT(h.tokenSignKey))
	{
		savedGroup.POST("", mw.RequirePayload(), h.saveQuestion)
		savedGroup.GET("", h.getSavedQuestions)
	}
}

type SaveQuestionReq struct {
	QuestionID string `json:"questionId"`
}

func (h *HttpEndpoints) saveQuestion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.QuizUserClaims)

	var req SaveQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.QuestionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionId is required"})
		return
	}

	// only existing questions can be bookmarked
	if _, err := h.quizDBConn.GetQuestionByID(req.QuestionID); err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id format"})
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("failed to look up question", slog.String("error", err.Error()), slog.String("questionID", req.QuestionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	saved, err := h.quizDBConn.SaveQuestionForUser(token.Subject, req.QuestionID)
	if err != nil {
		if quizDB.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question already saved"})
			return
		}
		slog.Error("failed to save question", slog.String("error", err.Error()), slog.String("subject", token.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("question saved", slog.String("subject", token.Subject), slog.String("questionID", req.QuestionID))
	c.JSON(http.StatusCreated, gin.H{
		"message":       "question saved",
		"savedQuestion": saved,
	})
}

func (h *HttpEndpoints) getSavedQuestions(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.QuizUserClaims)

	savedQuestions, err := h.quizDBConn.GetSavedQuestionsForUser(token.Subject)
	if err != nil {
		slog.Error("failed to fetch saved questions", slog.String("error", err.Error()), slog.String("subject", token.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"savedQuestions": savedQuestions})
}
