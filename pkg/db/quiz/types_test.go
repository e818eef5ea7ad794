package quiz

import (
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	validQuestion := func() Question {
		return Question{
			Question:      "What is 2 + 2?",
			Subject:       "Mathematics",
			Options:       []string{"3", "4", "5"},
			CorrectAnswer: 1,
		}
	}

	t.Run("valid question", func(t *testing.T) {
		q := validQuestion()
		if err := q.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("question text trimmed", func(t *testing.T) {
		q := validQuestion()
		q.Question = "  What is 2 + 2?  "
		if err := q.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if q.Question != "What is 2 + 2?" {
			t.Errorf("unexpected question text: %q", q.Question)
		}
	})

	t.Run("missing question text", func(t *testing.T) {
		q := validQuestion()
		q.Question = "   "
		if err := q.Validate(); err == nil {
			t.Error("should fail for empty question text")
		}
	})

	t.Run("unknown subject", func(t *testing.T) {
		q := validQuestion()
		q.Subject = "Astrology"
		if err := q.Validate(); err == nil {
			t.Error("should fail for unknown subject")
		}
	})

	t.Run("too few options", func(t *testing.T) {
		q := validQuestion()
		q.Options = []string{"4"}
		if err := q.Validate(); err == nil {
			t.Error("should fail with a single option")
		}
	})

	t.Run("correct answer out of range", func(t *testing.T) {
		q := validQuestion()
		q.CorrectAnswer = 3
		if err := q.Validate(); err == nil {
			t.Error("should fail for out of range answer index")
		}
		q = validQuestion()
		q.CorrectAnswer = -1
		if err := q.Validate(); err == nil {
			t.Error("should fail for negative answer index")
		}
	})
}
