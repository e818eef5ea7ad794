package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var questionSubjects = []string{
	"Mathematics",
	"Science",
	"History",
	"Literature",
	"Geography",
	"Computer Science",
}

type Question struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question      string             `bson:"question" json:"question"`
	Subject       string             `bson:"subject" json:"subject"`
	Options       []string           `bson:"options" json:"options"`
	CorrectAnswer int                `bson:"correctAnswer" json:"correctAnswer"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate checks the question document against the content rules before it
// is written to the collection.
func (q *Question) Validate() error {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return errors.New("question text is required")
	}
	if !isValidSubject(q.Subject) {
		return fmt.Errorf("invalid subject '%s'", q.Subject)
	}
	if len(q.Options) < 2 {
		return errors.New("at least 2 options are required")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return errors.New("correct answer index must be valid")
	}
	return nil
}

func isValidSubject(subject string) bool {
	for _, s := range questionSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

type SavedQuestion struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userID" json:"userID"`
	QuestionID primitive.ObjectID `bson:"questionID" json:"questionID"`
	SavedAt    time.Time          `bson:"savedAt" json:"savedAt"`
}

// SavedQuestionWithContent is the list representation with the referenced
// question document resolved.
type SavedQuestionWithContent struct {
	SavedQuestion `bson:",inline"`
	Question      *Question `bson:"question,omitempty" json:"question,omitempty"`
}
