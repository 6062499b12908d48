package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/fallback"
	"github.com/jerry-619/JobPrep-AI/internal/llm"
	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

type FeedbackEvaluator struct {
	gateway  llm.TextGenerator
	fallback *fallback.Library
	logger   *zap.Logger
}

func NewFeedbackEvaluator(gateway llm.TextGenerator, lib *fallback.Library, logger *zap.Logger) *FeedbackEvaluator {
	return &FeedbackEvaluator{gateway: gateway, fallback: lib, logger: logger}
}

// shape the model is asked to emit
type feedbackPayload struct {
	Feedback string      `json:"feedback"`
	Score    json.Number `json:"score"`
}

// Evaluate scores one answer against its question. Gateway failure and
// malformed model output both route to the heuristic fallback; the score is
// clamped to [1,10] on every path. Never returns an error.
func (e *FeedbackEvaluator) Evaluate(ctx context.Context, role string, question model.Question, answerText string, difficulty model.Difficulty) model.Feedback {
	raw, err := e.gateway.GenerateText(ctx, feedbackPrompt(role, question.Text, answerText, difficulty))
	if err != nil {
		e.logger.Sugar().Warnw("feedback generation failed, using fallback", "role", role, "err", err)
		return e.fallback.Feedback(question.Type, answerText)
	}

	fb, ok := parseFeedback(raw)
	if !ok {
		e.logger.Sugar().Warnw("feedback response not parseable, using fallback", "role", role)
		return e.fallback.Feedback(question.Type, answerText)
	}
	return fb
}

func feedbackPrompt(role, question, answer string, difficulty model.Difficulty) string {
	return fmt.Sprintf(`You are an expert interviewer for %s positions.
Evaluate this interview answer:

Question: %s
Answer: %s
Level: %s

Return the evaluation in this exact JSON format (no additional text):
{
  "feedback": "detailed evaluation of the answer",
  "score": number between 1-10
}`, role, question, answer, difficulty)
}

// parseFeedback accepts the strict JSON shape, tolerating a markdown code
// fence around it. Anything else is unparseable.
func parseFeedback(raw string) (model.Feedback, bool) {
	var payload feedbackPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return model.Feedback{}, false
	}
	if strings.TrimSpace(payload.Feedback) == "" {
		return model.Feedback{}, false
	}
	score, err := payload.Score.Float64()
	if err != nil {
		return model.Feedback{}, false
	}
	return model.Feedback{Text: payload.Feedback, Score: ClampScore(int(score))}, true
}

// ClampScore bounds a score to the [1,10] range.
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// stripCodeFence unwraps ```json ... ``` style fences some models emit
// despite the no-additional-text instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
