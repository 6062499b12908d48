// Package service holds the interview lifecycle: question generation on
// start, scored answer collection, the in_progress -> completed transition
// and report composition.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/cache"
	"github.com/jerry-619/JobPrep-AI/internal/genai"
	"github.com/jerry-619/JobPrep-AI/internal/repository"
	"github.com/jerry-619/JobPrep-AI/pkg/apperr"
	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

const (
	minQuestions = 1
	maxQuestions = 10
)

// InterviewStore is the persistence surface the service needs. The pgx
// repository satisfies it; tests plug in an in-memory store.
type InterviewStore interface {
	Create(ctx context.Context, iv *model.Interview) error
	GetByID(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Interview, error)
	UpdateAnswers(ctx context.Context, interviewID uuid.UUID, expectedVersion int, answers []model.Answer, overallScore float64, status model.InterviewStatus) error
}

type InterviewService struct {
	store     InterviewStore
	questions *genai.QuestionGenerator
	feedback  *genai.FeedbackEvaluator
	reports   *genai.ReportGenerator
	cache     *cache.ReportCache
	logger    *zap.Logger

	// one mutex per interview id; serializes submissions within this process,
	// the store's version check covers concurrent replicas
	locks sync.Map
}

func NewInterviewService(store InterviewStore, questions *genai.QuestionGenerator, feedback *genai.FeedbackEvaluator, reports *genai.ReportGenerator, reportCache *cache.ReportCache, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		store:     store,
		questions: questions,
		feedback:  feedback,
		reports:   reports,
		cache:     reportCache,
		logger:    logger,
	}
}

// Start generates the question set and persists a fresh in_progress session
// owned by ownerID.
func (s *InterviewService) Start(ctx context.Context, ownerID uuid.UUID, role string, difficulty model.Difficulty, numQuestions int) (*model.Interview, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, apperr.Validation("role is required")
	}
	if !difficulty.Valid() {
		return nil, apperr.Validation("difficulty must be one of easy, medium, hard")
	}
	if numQuestions < minQuestions || numQuestions > maxQuestions {
		return nil, apperr.Validation("number of questions must be between %d and %d", minQuestions, maxQuestions)
	}

	iv := &model.Interview{
		InterviewID: uuid.New(),
		UserID:      ownerID,
		Role:        role,
		Difficulty:  difficulty,
		Questions:   s.questions.Generate(ctx, role, difficulty, numQuestions),
		Answers:     []model.Answer{},
		Status:      model.StatusInProgress,
		Version:     1,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	s.logger.Sugar().Infow("interview started",
		"interview_id", iv.InterviewID, "role", role, "difficulty", difficulty, "questions", numQuestions)
	return iv, nil
}

// Get returns the session, enforcing ownership.
func (s *InterviewService) Get(ctx context.Context, callerID, interviewID uuid.UUID) (*model.Interview, error) {
	iv, err := s.store.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	if iv.UserID != callerID {
		return nil, apperr.Forbidden("not authorized")
	}
	return iv, nil
}

// List returns the caller's sessions, newest first.
func (s *InterviewService) List(ctx context.Context, callerID uuid.UUID) ([]model.Interview, error) {
	out, err := s.store.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return out, nil
}

// SubmitAnswer evaluates the answer for the question at questionIndex,
// records it, recomputes the overall score and completes the session when the
// last question is answered. Duplicate or out-of-range indexes are rejected
// before any evaluation happens. Submissions for the same session are
// serialized; a version conflict from another replica triggers one
// re-read-and-retry.
func (s *InterviewService) SubmitAnswer(ctx context.Context, callerID, interviewID uuid.UUID, questionIndex int, answerText string) (*model.Interview, model.Feedback, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, model.Feedback{}, apperr.Validation("answer is required")
	}

	mu := s.lockFor(interviewID)
	mu.Lock()
	defer mu.Unlock()

	const attempts = 2
	for attempt := 1; ; attempt++ {
		iv, err := s.Get(ctx, callerID, interviewID)
		if err != nil {
			return nil, model.Feedback{}, err
		}

		if questionIndex < 0 || questionIndex >= len(iv.Questions) {
			return nil, model.Feedback{}, apperr.OutOfRange("question index %d is out of range", questionIndex)
		}
		if iv.Answered(questionIndex) {
			return nil, model.Feedback{}, apperr.OutOfRange("question %d is already answered", questionIndex)
		}

		question := iv.Questions[questionIndex]
		fb := s.feedback.Evaluate(ctx, iv.Role, question, answerText, iv.Difficulty)

		iv.Answers = append(iv.Answers, model.Answer{
			QuestionIndex: questionIndex,
			Text:          answerText,
			Feedback:      fb,
		})
		iv.RecomputeScore()
		if len(iv.Answers) == len(iv.Questions) {
			iv.Status = model.StatusCompleted
		}

		err = s.store.UpdateAnswers(ctx, interviewID, iv.Version, iv.Answers, iv.OverallScore, iv.Status)
		switch {
		case err == nil:
			iv.Version++
			s.logger.Sugar().Infow("answer recorded",
				"interview_id", interviewID, "question_index", questionIndex,
				"score", fb.Score, "overall", iv.OverallScore, "status", iv.Status)
			return iv, fb, nil
		case errors.Is(err, repository.ErrVersionConflict) && attempt < attempts:
			s.logger.Sugar().Warnw("concurrent interview update, retrying",
				"interview_id", interviewID, "question_index", questionIndex)
			continue
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, model.Feedback{}, apperr.Wrap(apperr.CodeConflict, "interview was updated concurrently, retry", err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.Feedback{}, apperr.NotFound("interview not found")
		default:
			return nil, model.Feedback{}, fmt.Errorf("save answer: %w", err)
		}
	}
}

// Report composes the narrative report from whatever answers exist; the
// session does not need to be completed. Completed-session reports are cached
// when redis is configured.
func (s *InterviewService) Report(ctx context.Context, callerID, interviewID uuid.UUID) (string, error) {
	iv, err := s.Get(ctx, callerID, interviewID)
	if err != nil {
		return "", err
	}

	cacheKey := fmt.Sprintf("report:%s:%d", iv.InterviewID, len(iv.Answers))
	if iv.Status == model.StatusCompleted {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	pairs := make([]genai.QuestionAnswer, 0, len(iv.Answers))
	for _, a := range iv.Answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(iv.Questions) {
			continue
		}
		pairs = append(pairs, genai.QuestionAnswer{
			Question: iv.Questions[a.QuestionIndex].Text,
			Answer:   a.Text,
			Score:    a.Feedback.Score,
		})
	}

	report := s.reports.Generate(ctx, iv.Role, iv.OverallScore, pairs, iv.Difficulty)
	if iv.Status == model.StatusCompleted {
		s.cache.Set(ctx, cacheKey, report)
	}
	return report, nil
}

func (s *InterviewService) lockFor(interviewID uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(interviewID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
