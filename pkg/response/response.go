package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerry-619/JobPrep-AI/pkg/apperr"
)

// Envelope wraps all API responses in a consistent structure
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details for failed responses
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK sends a successful response with data
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 response for successfully created resources
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, string(apperr.CodeValidation), message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "unauthorized"
	}
	errorResponse(c, http.StatusUnauthorized, string(apperr.CodeUnauthorized), message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	errorResponse(c, http.StatusNotFound, string(apperr.CodeNotFound), message)
}

// InternalError sends a 500 response
// Note: never expose internal error details to clients
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	errorResponse(c, http.StatusInternalServerError, string(apperr.CodeInternal), message)
}

// statusByCode maps app error codes to HTTP statuses.
var statusByCode = map[apperr.Code]int{
	apperr.CodeValidation:   http.StatusBadRequest,
	apperr.CodeOutOfRange:   http.StatusBadRequest,
	apperr.CodeNotFound:     http.StatusNotFound,
	apperr.CodeForbidden:    http.StatusForbidden,
	apperr.CodeUnauthorized: http.StatusUnauthorized,
	apperr.CodeConflict:     http.StatusConflict,
	apperr.CodeUpstream:     http.StatusBadGateway,
	apperr.CodeInternal:     http.StatusInternalServerError,
}

// FromError sends the response for a coded app error. Errors without a code
// become a generic 500 so internal detail never leaks.
func FromError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var e *apperr.Error
	if errors.As(err, &e) && code != apperr.CodeInternal {
		message = e.Message
	}
	errorResponse(c, status, string(code), message)
}
