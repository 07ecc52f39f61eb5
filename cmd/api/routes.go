package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	// CORS middleware
	trusted := app.Config.GetCORSOrigins()
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, o := range trusted {
			if strings.EqualFold(o, origin) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/signup", app.Handler.SignUp)
		v1.POST("/auth/login", app.Handler.Login)

		// provider-signed, no session auth
		v1.POST("/payments/webhook", app.Handler.StripeWebhook)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)
		protected.POST("/auth/logout", app.Handler.Logout)
		protected.POST("/payments/checkout", app.Handler.CreateCheckout)

		// interview routes
		protected.GET("/interviews", app.Handler.ListInterviews)
		protected.GET("/interviews/latest", app.Handler.ListLatestInterviews)
		protected.GET("/interviews/:id", app.Handler.GetInterview)
		protected.DELETE("/interviews/:id", app.Handler.DeleteInterview)
		protected.GET("/interviews/:id/feedback", app.Handler.GetFeedback)
	}

	paid := protected.Group("/")
	paid.Use(app.PaidMiddleware())
	{
		paid.POST("/interviews", app.Handler.CreateInterview)
		paid.POST("/interviews/generate", app.Handler.GenerateInterview)
		paid.POST("/interviews/import", app.Handler.ImportInterview)

		// live voice attempts
		paid.POST("/agent/calls", app.Handler.StartCall)
		paid.GET("/agent/calls/:id", app.Handler.GetCall)
		paid.POST("/agent/calls/:id/disconnect", app.Handler.DisconnectCall)
	}

	return r
}
