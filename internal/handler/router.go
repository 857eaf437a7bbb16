package handler

import (
	"net/http"

	"blkout_community_go/internal/middleware"
	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/token"

	"github.com/gin-gonic/gin"
)

// RouterDeps bundles everything the HTTP surface needs. The n8n webhook
// secret gates the inbound automation endpoint.
type RouterDeps struct {
	SubmissionService service.SubmissionService
	ModerationService service.ModerationService
	KnowledgeService  service.KnowledgeService
	RatingService     service.RatingService
	ChatService       service.ChatService
	AuthService       service.AuthService
	JWTManager        *token.JWTManager
	N8NSecret         string
}

// NewRouter assembles the full API.
// Surface map:
//
//	public:  /api/events, /api/news, /api/ratings, /api/ivor/*
//	signed:  /api/webhooks/n8n-submissions (HMAC)
//	admin:   /api/moderation/* (JWT + ADMIN role)
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORS(), middleware.RequestLogger(), gin.Recovery())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"code":    http.StatusMethodNotAllowed,
			"message": "Method not allowed",
		})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "Not found",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	eventHandler := NewEventHandler(deps.SubmissionService)
	articleHandler := NewArticleHandler(deps.SubmissionService)
	moderationHandler := NewModerationHandler(deps.ModerationService)
	webhookHandler := NewWebhookHandler(deps.SubmissionService)
	ratingHandler := NewRatingHandler(deps.RatingService)
	chatHandler := NewChatHandler(deps.ChatService)
	authHandler := NewAuthHandler(deps.AuthService)
	knowledgeHandler := NewKnowledgeHandler(deps.KnowledgeService)

	api := r.Group("/api")
	{
		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)

		api.GET("/news", articleHandler.List)
		api.POST("/news", articleHandler.Create)

		api.POST("/ratings", ratingHandler.Rate)
		api.GET("/ratings/:contentType/:contentId", ratingHandler.Summary)

		ivor := api.Group("/ivor")
		{
			ivor.POST("/chat", chatHandler.Chat)
			ivor.GET("/ws", chatHandler.Socket)
			ivor.GET("/resources/search", knowledgeHandler.Search)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/profile",
				middleware.AuthMiddleware(deps.JWTManager, deps.AuthService),
				authHandler.Profile)
		}

		webhooks := api.Group("/webhooks")
		webhooks.Use(middleware.VerifySignature(deps.N8NSecret))
		{
			webhooks.POST("/n8n-submissions", webhookHandler.Receive)
		}

		moderation := api.Group("/moderation")
		moderation.Use(
			middleware.AuthMiddleware(deps.JWTManager, deps.AuthService),
			middleware.AdminAuthMiddleware(),
		)
		{
			moderation.GET("/queue", moderationHandler.Queue)
			moderation.POST("/:type/:id/approve", moderationHandler.Approve)
			moderation.POST("/:type/:id/reject", moderationHandler.Reject)
		}
	}

	return r
}
