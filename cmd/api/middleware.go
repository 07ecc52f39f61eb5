package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/handler"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/response"
)

func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := sessionTokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := app.Handler.TokenMaker.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		revoked, err := app.Handler.Sessions.IsRevoked(c.Request.Context(), claims.SessionID)
		if err != nil {
			app.Logger.Sugar().Errorw("session revocation check failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
			return
		}

		// the user must still exist
		user, err := app.Repository.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		c.Set("claims", claims)
		c.Set("user", user)
		c.Next()
	}
}

// PaidMiddleware gates interview-taking behind the lifetime-access purchase.
func (app *application) PaidMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := app.Handler.GetUserFromContext(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		if !user.HasPaid {
			response.PaymentRequired(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionTokenFromRequest prefers the session cookie, falling back to a
// Bearer header for API clients.
func sessionTokenFromRequest(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(handler.SessionCookie); err == nil && cookie != "" {
		return cookie, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("not signed in")
	}
	fields := strings.Fields(authHeader)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return fields[1], nil
}
