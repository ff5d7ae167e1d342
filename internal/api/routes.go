package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/config"
	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/metrics"
	"github.com/cse-connect/connect-backend/internal/middleware"
	"github.com/cse-connect/connect-backend/internal/models"
)

// Services bundles the business services behind the HTTP API.
type Services struct {
	Access   core.AccessService
	Users    core.UserService
	Feed     core.FeedService
	Projects core.ProjectService
	QA       core.QAService
	Links    core.LinkService
	Tubes    core.TubeService
	Chat     core.ChatService
	Alerts   core.AlertService
	Zen      core.ZenService
}

// SetupRoutes registers every route on router. Global middleware (logging,
// recovery, CORS, metrics) is expected to be installed by the caller.
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	gate middleware.Gatekeeper,
	svc Services,
) {
	sessionHandler := NewSessionHandler(svc.Access, logger)
	userHandler := NewUserHandler(svc.Users, cfg.PresenceWindow, logger)
	feedHandler := NewFeedHandler(svc.Feed, logger)
	qaHandler := NewQAHandler(svc.QA, logger)
	chatHandler := NewChatHandler(svc.Chat, logger)
	alertHandler := NewAlertHandler(svc.Alerts, logger)
	zenHandler := NewZenHandler(svc.Zen, logger)
	liveHandler := NewLiveHandler(svc, cfg.PresenceWindow, cfg.PresencePollInterval, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
	})
	if cfg.MetricsEnabled {
		router.GET("/metrics", metrics.Handler())
	}

	// Callable clients send the ID token themselves; the service answers
	// UNAUTHENTICATED when it is missing.
	router.POST("/functions/sendBroadcastSms", authMW.OptionalToken(), alertHandler.SendBroadcastSMSCallable)

	apiV1 := router.Group("/api/v1")
	apiV1.POST("/session", authMW.OptionalToken(), sessionHandler.Evaluate)

	members := apiV1.Group("", authMW.VerifyToken(), middleware.RequireMember(gate, logger))
	{
		members.GET("/me", userHandler.GetMe)
		members.PATCH("/me", userHandler.UpdateMe)
		members.POST("/me/heartbeat", userHandler.Heartbeat)
		members.GET("/users/online", userHandler.Online)

		feed := members.Group("/feed")
		{
			feed.GET("", feedHandler.ListPosts)
			feed.POST("", feedHandler.CreatePost)
			feed.PATCH("/:postId", feedHandler.UpdatePost)
			feed.DELETE("/:postId", feedHandler.DeletePost)
			feed.POST("/:postId/reactions", feedHandler.ToggleReaction)
			feed.GET("/:postId/comments", feedHandler.ListComments)
			feed.POST("/:postId/comments", feedHandler.AddComment)
			feed.DELETE("/:postId/comments/:commentId", feedHandler.DeleteComment)
		}

		NewResourceHandler[models.Project, models.ProjectRequest](svc.Projects, logger).register(members.Group("/projects"))
		NewResourceHandler[models.Link, models.LinkRequest](svc.Links, logger).register(members.Group("/links"))
		NewResourceHandler[models.Tube, models.LinkRequest](svc.Tubes, logger).register(members.Group("/tubes"))

		questions := members.Group("/questions")
		{
			questions.GET("", qaHandler.ListQuestions)
			questions.POST("", qaHandler.CreateQuestion)
			questions.PUT("/:questionId", qaHandler.UpdateQuestion)
			questions.DELETE("/:questionId", qaHandler.DeleteQuestion)
			questions.GET("/:questionId/answers", qaHandler.ListAnswers)
			questions.POST("/:questionId/answers", qaHandler.AddAnswer)
			questions.PUT("/:questionId/answers/:answerId", qaHandler.UpdateAnswer)
			questions.DELETE("/:questionId/answers/:answerId", qaHandler.DeleteAnswer)
		}

		chat := members.Group("/chat/channels")
		{
			chat.GET("", chatHandler.ListChannels)
			chat.POST("", chatHandler.CreateChannel)
			chat.GET("/:channelId/messages", chatHandler.ListMessages)
			chat.POST("/:channelId/messages", chatHandler.SendMessage)
		}

		alerts := members.Group("/alerts")
		{
			alerts.GET("", alertHandler.List)
			alerts.POST("", alertHandler.Create)
			alerts.POST("/:alertId/broadcast", alertHandler.Broadcast)
		}

		zen := members.Group("/zen")
		zenHandler.register(zen)
		zen.POST("/auto-quote", zenHandler.SeedQuote)

		liveHandler.register(members.Group("/live"))
	}
}
