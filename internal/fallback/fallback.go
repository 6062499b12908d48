// Package fallback holds the deterministic question and feedback content used
// whenever the model gateway fails or returns unusable output. The content
// table is embedded YAML parsed once at startup; a Library is immutable after
// Load and safe for concurrent use.
package fallback

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

//go:embed content.yaml
var contentYAML []byte

// quality tiers for heuristic feedback
const (
	tierHigh   = "high"
	tierMedium = "medium"
	tierLow    = "low"
)

// answer-quality signals
const (
	longAnswerLen  = 200
	shortAnswerLen = 50
)

var (
	detailKeywords    = []string{"example", "specific", "instance"}
	technicalKeywords = []string{"code", "framework", "library", "function"}
)

type questionSet struct {
	Roles   map[string]string `yaml:"roles"`
	Default string            `yaml:"default"`
}

type feedbackEntry struct {
	Text  string `yaml:"text"`
	Score int    `yaml:"score"`
}

type content struct {
	Questions map[model.QuestionType]map[model.Difficulty]questionSet  `yaml:"questions"`
	Feedback  map[model.QuestionType]map[string]feedbackEntry          `yaml:"feedback"`
}

type Library struct {
	c content
}

// Load parses the embedded content table and validates that every
// type/difficulty/tier combination is present.
func Load() (*Library, error) {
	var c content
	if err := yaml.Unmarshal(contentYAML, &c); err != nil {
		return nil, fmt.Errorf("parse fallback content: %w", err)
	}

	for _, qt := range []model.QuestionType{model.QuestionTechnical, model.QuestionBehavioral} {
		byDifficulty, ok := c.Questions[qt]
		if !ok {
			return nil, fmt.Errorf("fallback content missing %s questions", qt)
		}
		for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
			if qs, ok := byDifficulty[d]; !ok || qs.Default == "" {
				return nil, fmt.Errorf("fallback content missing %s/%s default question", qt, d)
			}
		}
		byTier, ok := c.Feedback[qt]
		if !ok {
			return nil, fmt.Errorf("fallback content missing %s feedback", qt)
		}
		for _, tier := range []string{tierHigh, tierMedium, tierLow} {
			fb, ok := byTier[tier]
			if !ok || fb.Text == "" || fb.Score < 1 || fb.Score > 10 {
				return nil, fmt.Errorf("fallback content has invalid %s/%s feedback", qt, tier)
			}
		}
	}
	return &Library{c: c}, nil
}

// MustLoad is for wiring at process start, where a broken embedded table is a
// programming error.
func MustLoad() *Library {
	lib, err := Load()
	if err != nil {
		panic(err)
	}
	return lib
}

// Questions returns count questions for the role and difficulty: the first
// ceil(count/2) technical (role-specific when known), the rest behavioral.
func (l *Library) Questions(role string, difficulty model.Difficulty, count int) []model.Question {
	technical := l.questionText(model.QuestionTechnical, difficulty, role)
	behavioral := l.questionText(model.QuestionBehavioral, difficulty, role)

	half := (count + 1) / 2
	out := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		q := model.Question{Type: model.QuestionTechnical, Text: technical, Difficulty: difficulty}
		if i >= half {
			q = model.Question{Type: model.QuestionBehavioral, Text: behavioral, Difficulty: difficulty}
		}
		out = append(out, q)
	}
	return out
}

func (l *Library) questionText(qt model.QuestionType, difficulty model.Difficulty, role string) string {
	qs := l.c.Questions[qt][difficulty]
	if text, ok := qs.Roles[role]; ok {
		return text
	}
	return qs.Default
}

// Feedback classifies the answer into a quality tier from two signals, its
// length and the presence of substance keywords, and returns the canned
// feedback for that tier.
func (l *Library) Feedback(questionType model.QuestionType, answerText string) model.Feedback {
	lower := strings.ToLower(answerText)
	hasDetail := containsAny(lower, detailKeywords)
	hasTechnical := containsAny(lower, technicalKeywords)

	tier := tierMedium
	if len(answerText) > longAnswerLen && (hasDetail || hasTechnical) {
		tier = tierHigh
	} else if len(answerText) < shortAnswerLen || (!hasDetail && !hasTechnical) {
		tier = tierLow
	}

	if questionType != model.QuestionTechnical && questionType != model.QuestionBehavioral {
		questionType = model.QuestionBehavioral
	}
	entry := l.c.Feedback[questionType][tier]
	return model.Feedback{Text: entry.Text, Score: entry.Score}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
