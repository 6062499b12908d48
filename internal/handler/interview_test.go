package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/auth"
	"github.com/jerry-619/JobPrep-AI/internal/fallback"
	"github.com/jerry-619/JobPrep-AI/internal/genai"
	"github.com/jerry-619/JobPrep-AI/internal/repository"
	"github.com/jerry-619/JobPrep-AI/internal/service"
	"github.com/jerry-619/JobPrep-AI/pkg/model"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// downGateway forces every generation component onto its fallback path so
// handler behavior is deterministic.
type downGateway struct{}

func (downGateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("gateway down")
}

// testRouter wires the interview routes with an in-memory store and a claims
// stub for the given user.
func testRouter(t *testing.T, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lib := fallback.MustLoad()
	log := zap.NewNop()
	svc := service.NewInterviewService(
		repository.NewMemoryInterviewStore(),
		genai.NewQuestionGenerator(downGateway{}, lib, log),
		genai.NewFeedbackEvaluator(downGateway{}, lib, log),
		genai.NewReportGenerator(downGateway{}, log),
		nil,
		log,
	)

	h := &Handler{Logger: log, Interviews: svc}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("claims", &auth.UserClaims{UserID: userID})
		c.Next()
	})
	v1 := r.Group("/api/v1")
	v1.POST("/interviews/generate", h.GenerateInterview)
	v1.GET("/interviews", h.ListInterviews)
	v1.GET("/interviews/:id", h.GetInterview)
	v1.POST("/interviews/:id/answers", h.SubmitAnswer)
	v1.GET("/interviews/:id/report", h.GetReport)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, "body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func TestGenerateInterview_Validation(t *testing.T) {
	r := testRouter(t, uuid.New())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing role", map[string]any{"difficulty": "medium", "numQuestions": 2}},
		{"bad difficulty", map[string]any{"role": "Backend", "difficulty": "brutal", "numQuestions": 2}},
		{"zero questions", map[string]any{"role": "Backend", "difficulty": "medium", "numQuestions": 0}},
		{"too many questions", map[string]any{"role": "Backend", "difficulty": "medium", "numQuestions": 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/interviews/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetInterview_NotFound(t *testing.T) {
	r := testRouter(t, uuid.New())

	w := doJSON(t, r, http.MethodGet, "/api/v1/interviews/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestGetInterview_BadID(t *testing.T) {
	r := testRouter(t, uuid.New())

	w := doJSON(t, r, http.MethodGet, "/api/v1/interviews/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInterviewLifecycle(t *testing.T) {
	userID := uuid.New()
	r := testRouter(t, userID)

	// start: Backend / medium / 2 questions
	w := doJSON(t, r, http.MethodPost, "/api/v1/interviews/generate", map[string]any{
		"role": "Backend", "difficulty": "medium", "numQuestions": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var iv model.Interview
	decodeData(t, w, &iv)
	require.Len(t, iv.Questions, 2)
	assert.Equal(t, model.QuestionTechnical, iv.Questions[0].Type)
	assert.Equal(t, model.QuestionBehavioral, iv.Questions[1].Type)
	assert.Equal(t, model.StatusInProgress, iv.Status)
	assert.Equal(t, userID, iv.UserID)

	// answer question 0
	answersPath := fmt.Sprintf("/api/v1/interviews/%s/answers", iv.InterviewID)
	w = doJSON(t, r, http.MethodPost, answersPath, map[string]any{
		"questionIndex": 0,
		"answer":        "A REST API exposes resources over HTTP, for example GET and POST verbs acting on URLs.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fbRes model.FeedbackRes
	decodeData(t, w, &fbRes)
	assert.GreaterOrEqual(t, fbRes.Feedback.Score, 1)
	assert.LessOrEqual(t, fbRes.Feedback.Score, 10)

	// duplicate index is rejected
	w = doJSON(t, r, http.MethodPost, answersPath, map[string]any{
		"questionIndex": 0, "answer": "trying again",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OUT_OF_RANGE", errorCode(t, w))

	// answer question 1, session completes
	w = doJSON(t, r, http.MethodPost, answersPath, map[string]any{
		"questionIndex": 1, "answer": "We disagreed on scope and I proposed splitting the milestone.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/interviews/"+iv.InterviewID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Interview
	decodeData(t, w, &got)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Len(t, got.Answers, 2)

	// report: plain text with the six sections (fallback template path)
	w = doJSON(t, r, http.MethodGet, "/api/v1/interviews/"+iv.InterviewID.String()+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	report := w.Body.String()
	for _, section := range []string{
		"Overall Assessment", "Technical Skills", "Communication Skills",
		"Strengths", "Areas for Improvement", "Recommendations",
	} {
		assert.Contains(t, report, section)
	}

	// list includes the session
	w = doJSON(t, r, http.MethodGet, "/api/v1/interviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Interview
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, iv.InterviewID, list[0].InterviewID)
}

func TestNonOwnerGetsForbidden(t *testing.T) {
	owner := uuid.New()
	// one shared service so both routers hit the same store
	gin.SetMode(gin.TestMode)
	lib := fallback.MustLoad()
	log := zap.NewNop()
	svc := service.NewInterviewService(
		repository.NewMemoryInterviewStore(),
		genai.NewQuestionGenerator(downGateway{}, lib, log),
		genai.NewFeedbackEvaluator(downGateway{}, lib, log),
		genai.NewReportGenerator(downGateway{}, log),
		nil,
		log,
	)

	newRouter := func(userID uuid.UUID) *gin.Engine {
		h := &Handler{Logger: log, Interviews: svc}
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("claims", &auth.UserClaims{UserID: userID})
			c.Next()
		})
		v1 := r.Group("/api/v1")
		v1.POST("/interviews/generate", h.GenerateInterview)
		v1.GET("/interviews/:id", h.GetInterview)
		v1.POST("/interviews/:id/answers", h.SubmitAnswer)
		v1.GET("/interviews/:id/report", h.GetReport)
		return r
	}

	ownerRouter := newRouter(owner)
	intruderRouter := newRouter(uuid.New())

	w := doJSON(t, ownerRouter, http.MethodPost, "/api/v1/interviews/generate", map[string]any{
		"role": "Backend", "difficulty": "medium", "numQuestions": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var iv model.Interview
	decodeData(t, w, &iv)

	id := iv.InterviewID.String()
	for _, req := range []struct {
		method, path string
		body         map[string]any
	}{
		{http.MethodGet, "/api/v1/interviews/" + id, nil},
		{http.MethodPost, "/api/v1/interviews/" + id + "/answers", map[string]any{"questionIndex": 0, "answer": "sneaky"}},
		{http.MethodGet, "/api/v1/interviews/" + id + "/report", nil},
	} {
		w := doJSON(t, intruderRouter, req.method, req.path, req.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", req.method, req.path)
	}

	// owner state untouched
	w = doJSON(t, ownerRouter, http.MethodGet, "/api/v1/interviews/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Interview
	decodeData(t, w, &got)
	assert.Empty(t, got.Answers)
	assert.Equal(t, model.StatusInProgress, got.Status)
}

func TestSubmitAnswer_MissingFields(t *testing.T) {
	r := testRouter(t, uuid.New())

	w := doJSON(t, r, http.MethodPost, "/api/v1/interviews/generate", map[string]any{
		"role": "Backend", "difficulty": "easy", "numQuestions": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var iv model.Interview
	decodeData(t, w, &iv)

	path := "/api/v1/interviews/" + iv.InterviewID.String() + "/answers"
	w = doJSON(t, r, http.MethodPost, path, map[string]any{"answer": "no index"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, path, map[string]any{"questionIndex": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
