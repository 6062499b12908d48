package model

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
)

type InterviewStatus string

const (
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

// Question is immutable once generated.
type Question struct {
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Difficulty Difficulty   `json:"difficulty"`
}

// Feedback is a scored evaluation of one answer. Score is always an integer
// in [1,10], whichever path produced it.
type Feedback struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Answer records one submission. QuestionIndex is unique within an interview
// and always below the question count.
type Answer struct {
	QuestionIndex int      `json:"question_index"`
	Text          string   `json:"answer"`
	Feedback      Feedback `json:"feedback"`
}

// Interview is one attempt: questions, collected answers, running score.
// Version backs the optimistic-concurrency check on answer submission.
type Interview struct {
	InterviewID  uuid.UUID       `json:"interview_id" db:"interview_id"`
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	Role         string          `json:"role" db:"role"`
	Difficulty   Difficulty      `json:"difficulty" db:"difficulty"`
	Questions    []Question      `json:"questions" db:"questions"`
	Answers      []Answer        `json:"answers" db:"answers"`
	Status       InterviewStatus `json:"status" db:"status"`
	OverallScore float64         `json:"overall_score" db:"overall_score"`
	Version      int             `json:"-" db:"version"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Answered reports whether an answer for questionIndex is already recorded.
func (iv *Interview) Answered(questionIndex int) bool {
	for _, a := range iv.Answers {
		if a.QuestionIndex == questionIndex {
			return true
		}
	}
	return false
}

// RecomputeScore sets OverallScore to the mean of all recorded feedback
// scores, zero when no answers exist.
func (iv *Interview) RecomputeScore() {
	if len(iv.Answers) == 0 {
		iv.OverallScore = 0
		return
	}
	total := 0
	for _, a := range iv.Answers {
		total += a.Feedback.Score
	}
	iv.OverallScore = float64(total) / float64(len(iv.Answers))
}

type GenerateInterviewReq struct {
	Role         string     `json:"role" binding:"required"`
	Difficulty   Difficulty `json:"difficulty" binding:"required,oneof=easy medium hard"`
	NumQuestions int        `json:"numQuestions" binding:"required,min=1,max=10"`
}

type SubmitAnswerReq struct {
	QuestionIndex *int   `json:"questionIndex" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
}

type FeedbackRes struct {
	Feedback Feedback `json:"feedback"`
}
