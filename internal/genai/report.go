package genai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/llm"
	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

// QuestionAnswer pairs an answered question with its answer and score for
// report composition.
type QuestionAnswer struct {
	Question string
	Answer   string
	Score    int
}

type ReportGenerator struct {
	gateway llm.TextGenerator
	logger  *zap.Logger
}

func NewReportGenerator(gateway llm.TextGenerator, logger *zap.Logger) *ReportGenerator {
	return &ReportGenerator{gateway: gateway, logger: logger}
}

// Generate composes the final narrative report. When the gateway fails the
// deterministic template below is returned instead, so report download never
// depends on model availability.
func (g *ReportGenerator) Generate(ctx context.Context, role string, overallScore float64, pairs []QuestionAnswer, difficulty model.Difficulty) string {
	report, err := g.gateway.GenerateText(ctx, reportPrompt(role, overallScore, pairs, difficulty))
	if err != nil {
		g.logger.Sugar().Warnw("report generation failed, using default template", "role", role, "err", err)
		return defaultReport(role, overallScore, pairs, difficulty)
	}
	return report
}

func reportPrompt(role string, overallScore float64, pairs []QuestionAnswer, difficulty model.Difficulty) string {
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	var qa strings.Builder
	for i, p := range pairs {
		if i > 0 {
			qa.WriteString("\n\n")
		}
		fmt.Fprintf(&qa, "Q: %s\nA: %s\nScore: %d/10", p.Question, p.Answer, p.Score)
	}

	return fmt.Sprintf(`Generate a detailed interview report for a %s position candidate.
Overall Score: %.1f/10
Level: %s

Questions and Answers:
%s

Generate a professional interview report with these sections:
1. Overall Assessment
2. Technical Skills
3. Communication Skills
4. Strengths
5. Areas for Improvement
6. Recommendations`, role, overallScore, titleCase(string(difficulty)), qa.String())
}

// defaultReport renders the same six sections the model is asked for, from
// the recorded scores alone.
func defaultReport(role string, overallScore float64, pairs []QuestionAnswer, difficulty model.Difficulty) string {
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	assessment := "Their responses indicated areas needing significant improvement."
	recommendation := "Recommend additional preparation before moving forward."
	switch {
	case overallScore >= 8:
		assessment = "Their responses showed excellent technical knowledge and strong communication skills."
		recommendation = "Strongly recommend moving forward with the candidate."
	case overallScore >= 6:
		assessment = "Their responses were satisfactory but there is room for improvement."
		recommendation = "Consider moving forward with the candidate after addressing concerns."
	}

	capability := "moderate"
	if overallScore >= 7 {
		capability = "strong"
	}

	var answered strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&answered, "- %s (scored %d/10)\n", p.Question, p.Score)
	}
	if answered.Len() == 0 {
		answered.WriteString("- No questions were answered.\n")
	}

	return fmt.Sprintf(`# Interview Report - %s Position (%s Level)

## Overall Assessment
The candidate demonstrated %s capabilities for the %s position, scoring %.1f/10 overall. %s

Questions covered:
%s
## Technical Skills
Shows understanding of %s fundamentals. Depth of technical knowledge is reflected in the per-question scores above.

## Communication Skills
Answers were recorded and scored; clarity and structure track the overall score of %.1f/10.

## Strengths
1. Shows understanding of %s fundamentals
2. Demonstrates willingness to learn and grow

## Areas for Improvement
1. Could provide more specific examples in answers
2. Should focus on deepening technical expertise

## Recommendations
%s`, role, titleCase(string(difficulty)), capability, role, overallScore, assessment,
		answered.String(), role, overallScore, role, recommendation)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
