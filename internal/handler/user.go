package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/repository"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/response"
)

// SignUp creates a new user. New users have not paid for lifetime access.
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

	userID, err := h.Repository.CreateUser(ctx, req.Name, req.Email, pwHash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Conflict(c, "User already exists. Please sign in instead.")
			return
		}
		h.Logger.Sugar().Errorw("user create failed", "email", req.Email, "err", err)
		response.BadRequest(c, "could not create user")
		return
	}

	response.Created(c, gin.H{"user_id": userID})
}

// Login verifies credentials and issues the session cookie.
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
		h.Logger.Sugar().Warnw("login password mismatch", "email", req.Email, "err", err)
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, _, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.SessionTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "could not generate token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.SessionTTL.Seconds()), "/", "", h.Secure, true)

	response.OK(c, user.ToRes())
}

// Me reports the current user, including the lifetime-access flag.
func (h *Handler) Me(c *gin.Context) {
	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}
	response.OK(c, user.ToRes())
}

// Logout revokes the current session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.Sessions.Revoke(c.Request.Context(), claims.SessionID, ttl); err != nil {
			h.Logger.Sugar().Errorw("session revoke failed", "session_id", claims.SessionID, "err", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.Secure, true)
	response.Message(c, "logged out")
}
