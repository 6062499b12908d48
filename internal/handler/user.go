package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jerry-619/JobPrep-AI/internal/repository"
	"github.com/jerry-619/JobPrep-AI/pkg"
	"github.com/jerry-619/JobPrep-AI/pkg/model"
	"github.com/jerry-619/JobPrep-AI/pkg/response"
)

// Register creates a new user and returns a token
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("register bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to hash password", "err", err)
		response.InternalError(c, "")
		return
	}

	userID, err := h.UserRepo.Create(ctx, req.Name, req.Email, pwHash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.BadRequest(c, "user already exists")
			return
		}
		h.Logger.Sugar().Errorw("user create failed", "email", req.Email, "err", err)
		response.InternalError(c, "")
		return
	}

	token, claims, err := h.TokenMaker.GenerateToken(userID, req.Email, h.JwtTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "")
		return
	}

	response.Created(c, model.AuthRes{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      model.UserRes{UserID: userID, Name: req.Name, Email: req.Email},
	})
}

// Login verifies credentials and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("login bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		h.Logger.Sugar().Warnw("login user not found", "email", req.Email, "err", err)
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.Logger.Sugar().Warnw("login password mismatch", "email", req.Email)
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, claims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.JwtTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, model.AuthRes{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email},
	})
}

// Me returns the current user profile
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}

	response.OK(c, model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email})
}
