package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

var reportSections = []string{
	"Overall Assessment",
	"Technical Skills",
	"Communication Skills",
	"Strengths",
	"Areas for Improvement",
	"Recommendations",
}

func samplePairs() []QuestionAnswer {
	return []QuestionAnswer{
		{Question: "What is a REST API?", Answer: "An HTTP interface over resources.", Score: 8},
		{Question: "Describe a team conflict.", Answer: "We disagreed on scope and split the work.", Score: 6},
	}
}

func TestReportGenerate_UsesModelOutput(t *testing.T) {
	gw := &stubGateway{response: "A thorough narrative report."}
	gen := NewReportGenerator(gw, zap.NewNop())

	report := gen.Generate(context.Background(), "Backend", 7.0, samplePairs(), model.DifficultyMedium)
	assert.Equal(t, "A thorough narrative report.", report)
	assert.Equal(t, 1, gw.calls)
}

func TestReportGenerate_GatewayFailureUsesTemplate(t *testing.T) {
	gw := &stubGateway{err: errors.New("unavailable")}
	gen := NewReportGenerator(gw, zap.NewNop())

	report := gen.Generate(context.Background(), "Backend", 7.0, samplePairs(), model.DifficultyMedium)
	require.NotEmpty(t, report)
	for _, section := range reportSections {
		assert.Contains(t, report, section)
	}
	assert.Contains(t, report, "Backend")
	assert.Contains(t, report, "7.0/10")
}

func TestDefaultReport_ScoreBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{9.0, "Strongly recommend moving forward"},
		{6.5, "Consider moving forward"},
		{3.0, "Recommend additional preparation"},
	}
	for _, tt := range tests {
		report := defaultReport("Backend", tt.score, samplePairs(), model.DifficultyMedium)
		assert.Contains(t, report, tt.want, "score=%.1f", tt.score)
	}
}

func TestDefaultReport_NoAnswers(t *testing.T) {
	report := defaultReport("Backend", 0, nil, model.DifficultyEasy)
	assert.Contains(t, report, "No questions were answered.")
	for _, section := range reportSections {
		assert.Contains(t, report, section)
	}
}

func TestDefaultReport_EmptyDifficultyDefaultsToMedium(t *testing.T) {
	report := defaultReport("Backend", 5, samplePairs(), "")
	assert.Contains(t, report, "Medium Level")
}
