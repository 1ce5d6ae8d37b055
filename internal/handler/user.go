package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshrynzw/auriary/internal/repository"
	"github.com/mshrynzw/auriary/pkg"
	"github.com/mshrynzw/auriary/pkg/model"
	"github.com/mshrynzw/auriary/pkg/response"
)

// SignUp creates a new user
// POST /api/v1/signup
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("signup bad request", "err", err)
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

	userID, err := h.Repository.CreateUser(ctx, req.Email, req.DisplayName, pwHash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			response.Conflict(c, "email already registered")
			return
		}
		h.Logger.Sugar().Errorw("user create failed", "email", req.Email, "err", err)
		response.InternalError(c, "could not create user")
		return
	}

	response.Created(c, gin.H{"user_id": userID})
}

// Login verifies credentials and returns access and refresh tokens
// POST /api/v1/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("login bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repository.GetUserByEmail(ctx, req.Email)
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

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.AccessTokenTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "could not generate token")
		return
	}

	refreshToken, refreshClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.RefreshTokenTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "could not generate token")
		return
	}

	session, err := h.Repository.CreateUserSession(ctx, &model.UserSession{
		SessionID:    refreshClaims.ID,
		UserID:       user.UserID,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshClaims.ExpiresAt.Time,
		IsRevoked:    false,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("error creating session", "err", err)
		response.InternalError(c, "could not create session")
		return
	}

	response.OK(c, model.LoginRes{
		SessionID:             session.SessionID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessClaims.ExpiresAt.Time,
		RefreshTokenExpiresAt: refreshClaims.ExpiresAt.Time,
		User:                  model.UserRes{UserID: user.UserID, Email: user.Email, DisplayName: user.DisplayName},
	})
}

// Me returns the current user profile
// GET /api/v1/me
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Repository.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}

	response.OK(c, model.UserRes{UserID: user.UserID, Email: user.Email, DisplayName: user.DisplayName})
}

// Logout revokes the refresh-token session
// POST /api/v1/logout
func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.Repository.GetUserSession(c.Request.Context(), req.SessionID)
	if err != nil || session.UserID != claims.UserID {
		response.NotFound(c, "session not found")
		return
	}

	if err := h.Repository.DeleteUserSession(c.Request.Context(), req.SessionID); err != nil {
		response.InternalError(c, "could not revoke session")
		return
	}
	response.Message(c, "user logged out successfully")
}

// RevokeSession marks the refresh-token session revoked without deleting it
// POST /api/v1/tokens/revoke
func (h *Handler) RevokeSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.Repository.GetUserSession(c.Request.Context(), req.SessionID)
	if err != nil || session.UserID != claims.UserID {
		response.NotFound(c, "session not found")
		return
	}

	if err := h.Repository.RevokeUserSession(c.Request.Context(), req.SessionID); err != nil {
		response.InternalError(c, "could not revoke session")
		return
	}
	response.Message(c, "session revoked")
}

// DeleteAccount removes the user and all their data
// DELETE /api/v1/me
func (h *Handler) DeleteAccount(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	if err := h.Repository.DeleteUser(c.Request.Context(), claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		h.Logger.Sugar().Errorw("account delete failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not delete account")
		return
	}

	response.Message(c, "account deleted")
}

// RenewAccessToken exchanges a valid refresh token for a new access token
// POST /api/v1/tokens/renew
func (h *Handler) RenewAccessToken(c *gin.Context) {
	var req model.RenewAccessTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	refreshClaims, err := h.TokenMaker.VerifyToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	ctx := c.Request.Context()
	session, err := h.Repository.GetUserSession(ctx, refreshClaims.ID)
	if err != nil {
		response.Unauthorized(c, "session not found")
		return
	}
	if session.IsRevoked || session.RefreshToken != req.RefreshToken || time.Now().After(session.ExpiresAt) {
		response.Unauthorized(c, "session expired or revoked")
		return
	}

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(refreshClaims.UserID, refreshClaims.Email, h.AccessTokenTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "could not generate token")
		return
	}

	response.OK(c, model.RenewAccessTokenRes{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessClaims.ExpiresAt.Time,
	})
}
