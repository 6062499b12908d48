package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jerry-619/JobPrep-AI/internal/auth"
	"github.com/jerry-619/JobPrep-AI/internal/repository"
	"github.com/jerry-619/JobPrep-AI/internal/service"
)

type Handler struct {
	Logger     *zap.Logger
	UserRepo   *repository.UserRepository
	Interviews *service.InterviewService
	TokenMaker *auth.JWTMaker
	JwtTTL     time.Duration
}

// GetClaimsFromContext retrieves the verified claims set by the auth
// middleware; nil when the request is unauthenticated.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
