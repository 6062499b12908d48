package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

// MemoryInterviewStore keeps interviews in process memory with the same
// version semantics as the pgx repository. Used by tests and useful for
// running the API without Postgres.
type MemoryInterviewStore struct {
	mu         sync.RWMutex
	interviews map[uuid.UUID]model.Interview
}

func NewMemoryInterviewStore() *MemoryInterviewStore {
	return &MemoryInterviewStore{interviews: make(map[uuid.UUID]model.Interview)}
}

func (s *MemoryInterviewStore) Create(ctx context.Context, iv *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews[iv.InterviewID] = cloneInterview(*iv)
	return nil
}

func (s *MemoryInterviewStore) GetByID(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iv, ok := s.interviews[interviewID]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneInterview(iv)
	return &out, nil
}

func (s *MemoryInterviewStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Interview{}
	for _, iv := range s.interviews {
		if iv.UserID == userID {
			out = append(out, cloneInterview(iv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryInterviewStore) UpdateAnswers(ctx context.Context, interviewID uuid.UUID, expectedVersion int, answers []model.Answer, overallScore float64, status model.InterviewStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	if iv.Version != expectedVersion {
		return ErrVersionConflict
	}
	iv.Answers = append([]model.Answer(nil), answers...)
	iv.OverallScore = overallScore
	iv.Status = status
	iv.Version++
	s.interviews[interviewID] = iv
	return nil
}

func cloneInterview(iv model.Interview) model.Interview {
	iv.Questions = append([]model.Question(nil), iv.Questions...)
	iv.Answers = append([]model.Answer(nil), iv.Answers...)
	return iv
}
