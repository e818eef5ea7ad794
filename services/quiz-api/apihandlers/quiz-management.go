package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quiz-framework/quiz-backend/pkg/apihelpers"
	mw "github.com/quiz-framework/quiz-backend/pkg/apihelpers/middlewares"
	quizDB "github.com/quiz-framework/quiz-backend/pkg/db/quiz"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *HttpEndpoints) AddQuizManagementAPI(rg *gin.RouterGroup) {
	quizGroup := rg.Group("/quiz")
	{
		quizGroup.POST("", mw.RequirePayload(), h.createQuestion)
		quizGroup.POST("/batch", mw.RequirePayload(), h.createQuestions)
		quizGroup.GET("", h.getQuestions)
		quizGroup.GET("/:questionID", h.getQuestionByID)
		quizGroup.PATCH("/:questionID", mw.RequirePayload(), h.updateQuestion)
		quizGroup.DELETE("/:questionID", h.deleteQuestion)
	}
}

func (h *HttpEndpoints) createQuestion(c *gin.Context) {
	var question quizDB.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := question.Validate(); err != nil {
		slog.Warn("invalid question payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizDBConn.CreateQuestion(&question); err != nil {
		slog.Error("failed to create question", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("question created", slog.String("questionID", question.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{
		"message":  "question created",
		"question": question,
	})
}

type CreateQuestionsReq struct {
	Questions []quizDB.Question `json:"questions"`
}

func (h *HttpEndpoints) createQuestions(c *gin.Context) {
	var req CreateQuestionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questions must be a non-empty array"})
		return
	}

	for i := range req.Questions {
		if err := req.Questions[i].Validate(); err != nil {
			slog.Warn("invalid question payload in batch", slog.Int("index", i), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("question %d: %s", i, err.Error())})
			return
		}
	}

	questions, err := h.quizDBConn.CreateQuestions(req.Questions)
	if err != nil {
		slog.Error("failed to insert questions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("questions inserted", slog.Int("count", len(questions)))
	c.JSON(http.StatusCreated, gin.H{
		"message":   fmt.Sprintf("%d question(s) inserted", len(questions)),
		"questions": questions,
	})
}

func (h *HttpEndpoints) getQuestions(c *gin.Context) {
	paginatedQuery, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Warn("invalid pagination query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}

	subject := c.DefaultQuery("subject", "")

	questions, totalCount, err := h.quizDBConn.GetQuestions(subject, paginatedQuery.Page, paginatedQuery.Limit)
	if err != nil {
		slog.Error("failed to fetch questions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":  questions,
		"pagination": apihelpers.PreparePaginationInfos(totalCount, paginatedQuery.Page, paginatedQuery.Limit),
	})
}

func (h *HttpEndpoints) getQuestionByID(c *gin.Context) {
	questionID := c.Param("questionID")

	question, err := h.quizDBConn.GetQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id format"})
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("failed to fetch question", slog.String("error", err.Error()), slog.String("questionID", questionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

func (h *HttpEndpoints) updateQuestion(c *gin.Context) {
	questionID := c.Param("questionID")

	var question quizDB.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := question.Validate(); err != nil {
		slog.Warn("invalid question payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.quizDBConn.UpdateQuestion(questionID, question)
	if err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id format"})
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("failed to update question", slog.String("error", err.Error()), slog.String("questionID", questionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("question updated", slog.String("questionID", questionID))
	c.JSON(http.StatusOK, gin.H{"question": updated})
}

func (h *HttpEndpoints) deleteQuestion(c *gin.Context) {
	questionID := c.Param("questionID")

	count, err := h.quizDBConn.DeleteQuestion(questionID)
	if err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id format"})
			return
		}
		slog.Error("failed to delete question", slog.String("error", err.Error()), slog.String("questionID", questionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if count < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	slog.Info("question deleted", slog.String("questionID", questionID))
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}
