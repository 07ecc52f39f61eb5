package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/auth"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/cache"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/feedback"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/fetcher"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/gemini"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/payment"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/repository"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"go.uber.org/zap"
)

// SessionCookie is the name of the httpOnly auth cookie.
const SessionCookie = "session"

type Handler struct {
	Logger     *zap.Logger
	Repository *repository.Repository
	TokenMaker *auth.JWTMaker
	Sessions   *cache.SessionStore
	SessionTTL time.Duration
	Secure     bool // mark cookies Secure in production

	Gemini    *gemini.Client
	Generator *feedback.Generator
	Payments  *payment.Service
	Fetcher   *fetcher.Fetcher
	Calls     *CallRegistry

	VapiWorkflowID  string
	VapiAssistantID string
}

// GetUserFromContext retrieves the authenticated user set by the auth
// middleware.
func (h *Handler) GetUserFromContext(c *gin.Context) *model.User {
	contextUser, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := contextUser.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetClaimsFromContext retrieves the verified token claims set by the auth
// middleware.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	contextClaims, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := contextClaims.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
