package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshrynzw/auriary/internal/cache"
	"github.com/mshrynzw/auriary/pkg/response"
)

func (app *application) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	r.Use(app.CORSMiddleware())
	if app.Config.Limiter.Enabled {
		r.Use(app.RateLimitMiddleware())
	}

	r.GET("/healthz", app.healthz)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/signup", app.Handler.SignUp)
		v1.POST("/login", app.Handler.Login)
		v1.POST("/tokens/renew", app.Handler.RenewAccessToken)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)
		protected.DELETE("/me", app.Handler.DeleteAccount)
		protected.POST("/logout", app.Handler.Logout)
		protected.POST("/tokens/revoke", app.Handler.RevokeSession)

		// diary routes
		protected.POST("/diaries", app.Handler.CreateDiary)
		protected.GET("/diaries", app.Handler.ListDiaries)
		protected.GET("/diaries/:id", app.Handler.GetDiary)
		protected.PATCH("/diaries/:id", app.Handler.UpdateDiary)
		protected.DELETE("/diaries/:id", app.Handler.DeleteDiary)
		protected.POST("/diaries/:id/analyze", app.Handler.AnalyzeDiary)

		// ai routes
		protected.POST("/ai/analyze", app.Handler.AnalyzeText)
		protected.POST("/ai/highlight", app.Handler.HighlightText)
		protected.POST("/ai/complete", app.Handler.CompleteText)
		protected.POST("/ai/topics", app.Handler.ExtractTopics)

		// dashboard routes
		protected.GET("/dashboard/series", app.Handler.GetDashboardSeries)

		// medication routes
		protected.POST("/medications", app.Handler.CreateMedication)
		protected.GET("/medications", app.Handler.ListMedications)
	}

	return r
}

// healthz reports readiness of the server and its backing services.
func (app *application) healthz(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{"database": "ok"}
	healthy := true

	if err := app.DB.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if app.Redis != nil {
		checks["redis"] = "ok"
		if err := cache.Ping(ctx, app.Redis); err != nil {
			checks["redis"] = err.Error()
		}
	}
	if app.Sentiment != nil {
		checks["sentiment_api"] = "ok"
		if err := app.Sentiment.Health(ctx); err != nil {
			checks["sentiment_api"] = err.Error()
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	response.OK(c, gin.H{"status": "ok", "checks": checks})
}

func (app *application) CORSMiddleware() gin.HandlerFunc {
	origins := app.Config.GetCORSOrigins()
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{"POST", "OPTIONS", "GET", "PATCH", "DELETE"}, ", "))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
