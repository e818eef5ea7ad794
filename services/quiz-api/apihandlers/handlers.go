package apihandlers

import (
	"net/http"
	"time"

	quizDB "github.com/quiz-framework/quiz-backend/pkg/db/quiz"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	quizDBConn     *quizDB.QuizDBService
	tokenSignKey   string
	tokenExpiresIn time.Duration
	debugMode      bool
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	quizDBConn *quizDB.QuizDBService,
	debugMode bool,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:   tokenSignKey,
		tokenExpiresIn: tokenExpiresIn,
		quizDBConn:     quizDBConn,
		debugMode:      debugMode,
	}
}
