package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jerry-619/JobPrep-AI/pkg/model"
	"github.com/jerry-619/JobPrep-AI/pkg/response"
)

// GenerateInterview starts a new session: questions are generated for the
// requested role and difficulty and the session is persisted in_progress.
func (h *Handler) GenerateInterview(c *gin.Context) {
	var req model.GenerateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	iv, err := h.Interviews.Start(c.Request.Context(), claims.UserID, req.Role, req.Difficulty, req.NumQuestions)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to start interview", "role", req.Role, "err", err)
		response.FromError(c, err)
		return
	}

	response.Created(c, iv)
}

// GetInterview returns one session, owner only.
func (h *Handler) GetInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	iv, err := h.Interviews.Get(c.Request.Context(), claims.UserID, interviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, iv)
}

// ListInterviews returns the caller's sessions, newest first.
func (h *Handler) ListInterviews(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviews, err := h.Interviews.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "err", err)
		response.FromError(c, err)
		return
	}

	response.OK(c, interviews)
}

// SubmitAnswer records the answer for one question index and returns its
// feedback.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	var req model.SubmitAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	_, fb, err := h.Interviews.SubmitAnswer(c.Request.Context(), claims.UserID, interviewID, *req.QuestionIndex, req.Answer)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, model.FeedbackRes{Feedback: fb})
}

// GetReport streams the narrative report as plain text. A session can be
// reported at any status; the report covers whatever answers exist.
func (h *Handler) GetReport(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	report, err := h.Interviews.Report(c.Request.Context(), claims.UserID, interviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.String(http.StatusOK, report)
}

func parseInterviewID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid interview id")
		return uuid.Nil, false
	}
	return id, true
}
