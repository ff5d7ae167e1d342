package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/live"
	"github.com/cse-connect/connect-backend/internal/metrics"
)

// LiveHandler upgrades /live/... requests and streams snapshots of the
// matching query until the client disconnects.
type LiveHandler struct {
	svc            Services
	presenceWindow time.Duration
	presenceEvery  time.Duration
	logger         *zap.Logger
}

func NewLiveHandler(svc Services, presenceWindow, presenceEvery time.Duration, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{svc: svc, presenceWindow: presenceWindow, presenceEvery: presenceEvery, logger: logger}
}

func (h *LiveHandler) serve(c *gin.Context, topic string, open live.Opener) {
	conn, err := live.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already answered the request.
		h.logger.Debug("websocket upgrade failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	defer metrics.LiveOpened()()
	live.Pump(c.Request.Context(), conn, topic, open, h.logger)
}

// handle adapts a watch function with no path parameters.
func (h *LiveHandler) handle(topic string, watch func(ctx context.Context) live.Stream) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serve(c, topic, watch)
	}
}

// handleParam adapts a watch function scoped by one path parameter.
func (h *LiveHandler) handleParam(topic, param string, watch func(ctx context.Context, id string) live.Stream) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(param)
		h.serve(c, topic, func(ctx context.Context) live.Stream { return watch(ctx, id) })
	}
}

func (h *LiveHandler) register(g *gin.RouterGroup) {
	s := h.svc
	g.GET("/feed", h.handle("feedPosts", func(ctx context.Context) live.Stream { return s.Feed.WatchPosts(ctx) }))
	g.GET("/feed/:postId/comments", h.handleParam("comments", "postId", func(ctx context.Context, id string) live.Stream {
		return s.Feed.WatchComments(ctx, id)
	}))
	g.GET("/projects", h.handle("projects", func(ctx context.Context) live.Stream { return s.Projects.Watch(ctx) }))
	g.GET("/questions", h.handle("questions", func(ctx context.Context) live.Stream { return s.QA.WatchQuestions(ctx) }))
	g.GET("/questions/:questionId/answers", h.handleParam("answers", "questionId", func(ctx context.Context, id string) live.Stream {
		return s.QA.WatchAnswers(ctx, id)
	}))
	g.GET("/links", h.handle("links", func(ctx context.Context) live.Stream { return s.Links.Watch(ctx) }))
	g.GET("/tubes", h.handle("tubes", func(ctx context.Context) live.Stream { return s.Tubes.Watch(ctx) }))
	g.GET("/chat/channels", h.handle("chatChannels", func(ctx context.Context) live.Stream { return s.Chat.WatchChannels(ctx) }))
	g.GET("/chat/channels/:channelId/messages", h.handleParam("messages", "channelId", func(ctx context.Context, id string) live.Stream {
		return s.Chat.WatchMessages(ctx, id)
	}))
	g.GET("/alerts", h.handle("alerts", func(ctx context.Context) live.Stream { return s.Alerts.Watch(ctx) }))
	g.GET("/zen", h.handle("zenMoments", func(ctx context.Context) live.Stream { return s.Zen.Watch(ctx) }))
	g.GET("/presence", h.handle("presence", func(ctx context.Context) live.Stream {
		return s.Users.WatchOnline(ctx, h.presenceWindow, h.presenceEvery)
	}))
}
