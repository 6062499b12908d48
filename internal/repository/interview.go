package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

// InterviewRepository persists interview sessions. Questions and answers live
// in jsonb columns; version backs the compare-and-set on answer updates.
type InterviewRepository struct {
	db *pgxpool.Pool
}

func (r *InterviewRepository) Create(ctx context.Context, iv *model.Interview) error {
	questions, err := json.Marshal(iv.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	answers, err := json.Marshal(iv.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const q = `
INSERT INTO interviews (
	interview_id, user_id, role, difficulty, questions, answers,
	status, overall_score, version, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err = r.db.Exec(ctx, q,
		iv.InterviewID, iv.UserID, iv.Role, iv.Difficulty, questions, answers,
		iv.Status, iv.OverallScore, iv.Version, iv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error) {
	const q = `
SELECT interview_id, user_id, role, difficulty, questions, answers,
	status, overall_score, version, created_at
FROM interviews WHERE interview_id = $1
`
	row := r.db.QueryRow(ctx, q, interviewID)
	iv, err := scanInterview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return iv, nil
}

func (r *InterviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Interview, error) {
	const q = `
SELECT interview_id, user_id, role, difficulty, questions, answers,
	status, overall_score, version, created_at
FROM interviews WHERE user_id = $1 ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	out := []model.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, *iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateAnswers writes the answer list, score and status for the interview,
// guarded by the expected version. A concurrent submission that already bumped
// the version surfaces as ErrVersionConflict and must be retried from a fresh
// read.
func (r *InterviewRepository) UpdateAnswers(ctx context.Context, interviewID uuid.UUID, expectedVersion int, answers []model.Answer, overallScore float64, status model.InterviewStatus) error {
	encoded, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const q = `
UPDATE interviews
SET answers = $1, overall_score = $2, status = $3, version = version + 1
WHERE interview_id = $4 AND version = $5
`
	tag, err := r.db.Exec(ctx, q, encoded, overallScore, status, interviewID, expectedVersion)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// no row matched: either the interview is gone or the version moved
	const existsQ = `SELECT COUNT(1) FROM interviews WHERE interview_id = $1`
	var count int
	if err := r.db.QueryRow(ctx, existsQ, interviewID).Scan(&count); err != nil {
		return fmt.Errorf("check interview exists: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrVersionConflict
}

func scanInterview(row pgx.Row) (*model.Interview, error) {
	var (
		iv        model.Interview
		questions []byte
		answers   []byte
	)
	err := row.Scan(
		&iv.InterviewID, &iv.UserID, &iv.Role, &iv.Difficulty, &questions, &answers,
		&iv.Status, &iv.OverallScore, &iv.Version, &iv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &iv.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(answers, &iv.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &iv, nil
}
