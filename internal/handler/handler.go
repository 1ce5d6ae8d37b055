package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mshrynzw/auriary/internal/auth"
	"github.com/mshrynzw/auriary/internal/cache"
	"github.com/mshrynzw/auriary/internal/repository"
	"github.com/mshrynzw/auriary/internal/sentimentapi"
)

type Handler struct {
	Logger          *zap.Logger
	Repository      *repository.Repository
	TokenMaker      *auth.JWTMaker
	Engine          *sentimentapi.Engine
	AnalysisCache   *cache.AnalysisCache
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// GetClaimsFromContext retrieves the verified token claims set by the auth
// middleware.
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
