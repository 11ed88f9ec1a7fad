package main

import (
	"github.com/VenkataVardineni/careerbuildai/internal/config"
	"github.com/VenkataVardineni/careerbuildai/internal/handler"
	"github.com/VenkataVardineni/careerbuildai/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func routes(cfg *config.Config, log *zap.Logger, h *handler.Handler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(corsMiddleware(cfg.GetCORSOrigins()))
	if cfg.Limiter.Enabled {
		r.Use(rateLimit(cfg.Limiter))
	}

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})

	api := r.Group("/api/v1")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/guest", h.Guest)
	api.POST("/tokens/renew", h.RenewAccessToken)

	authed := api.Group("")
	authed.Use(authMiddleware(h))
	{
		authed.GET("/auth/me", h.Me)
		authed.POST("/auth/logout", h.Logout)
		authed.POST("/tokens/revoke", h.RevokeSession)

		authed.GET("/users", h.ListUsers)
		authed.GET("/users/:id", h.GetUser)

		authed.POST("/profiles", h.CreateProfile)
		authed.GET("/profiles", h.ListProfiles)
		authed.GET("/profiles/:id", h.GetProfile)
		authed.PATCH("/profiles/:id", h.UpdateProfile)
		authed.DELETE("/profiles/:id", h.DeleteProfile)
		authed.POST("/profiles/upload-resume", h.UploadResume)

		authed.POST("/interviews", h.CreateInterview)
		authed.GET("/interviews", h.ListInterviews)
		authed.GET("/interviews/:id", h.GetInterview)
		authed.DELETE("/interviews/:id", h.DeleteInterview)
		authed.POST("/interviews/:id/generate-question", h.GenerateQuestion)
		authed.POST("/interviews/:id/questions/:questionId/respond", h.Respond)
		authed.POST("/interviews/:id/complete", h.Complete)
		authed.POST("/interviews/:id/feedback", h.Feedback)
	}

	return r
}
