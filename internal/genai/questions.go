// Package genai builds prompts for the chat gateway and parses its output
// into domain values, falling back to the static content library whenever the
// gateway fails or the output is unusable.
package genai

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/fallback"
	"github.com/jerry-619/JobPrep-AI/internal/llm"
	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

// numbered list marker: "1. " or "1) "
var questionLineRe = regexp.MustCompile(`^\s*\d+[.)]\s*`)

type QuestionGenerator struct {
	gateway  llm.TextGenerator
	fallback *fallback.Library
	logger   *zap.Logger
}

func NewQuestionGenerator(gateway llm.TextGenerator, lib *fallback.Library, logger *zap.Logger) *QuestionGenerator {
	return &QuestionGenerator{gateway: gateway, fallback: lib, logger: logger}
}

// Generate returns exactly count questions, the first ceil(count/2) technical
// and the rest behavioral. Gateway failure or a short parse discards the
// model output entirely in favor of the fallback library; generation never
// returns an error.
func (g *QuestionGenerator) Generate(ctx context.Context, role string, difficulty model.Difficulty, count int) []model.Question {
	raw, err := g.gateway.GenerateText(ctx, questionPrompt(role, difficulty, count))
	if err != nil {
		g.logger.Sugar().Warnw("question generation failed, using fallbacks", "role", role, "err", err)
		return g.fallback.Questions(role, difficulty, count)
	}

	questions := parseQuestions(raw, difficulty, count)
	if len(questions) < count {
		g.logger.Sugar().Warnw("insufficient questions parsed, using fallbacks",
			"role", role, "parsed", len(questions), "want", count)
		return g.fallback.Questions(role, difficulty, count)
	}
	return questions
}

func questionPrompt(role string, difficulty model.Difficulty, count int) string {
	var format strings.Builder
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&format, "%d. [Question %d]\n", i, i)
	}

	return fmt.Sprintf(`Generate %d interview questions for a %s position.
Level: %s

Requirements:
1. First half of questions must be technical about %s skills
2. Second half must be behavioral/soft skills questions
3. Questions should match %s level
4. Questions must be clear and specific

Return the questions in this exact format (no additional text):
%s`, count, role, difficulty, role, difficulty, strings.TrimRight(format.String(), "\n"))
}

// parseQuestions keeps lines carrying a leading number marker, strips the
// marker, truncates to count and tags the first half technical.
func parseQuestions(raw string, difficulty model.Difficulty, count int) []model.Question {
	half := (count + 1) / 2
	out := make([]model.Question, 0, count)
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" || !questionLineRe.MatchString(line) {
			continue
		}
		text := strings.TrimSpace(questionLineRe.ReplaceAllString(line, ""))
		if text == "" {
			continue
		}
		qt := model.QuestionTechnical
		if len(out) >= half {
			qt = model.QuestionBehavioral
		}
		out = append(out, model.Question{Text: text, Type: qt, Difficulty: difficulty})
		if len(out) == count {
			break
		}
	}
	return out
}
