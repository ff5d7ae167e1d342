package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/models"
)

// ChatHandler handles channels and their append-only messages.
type ChatHandler struct {
	chat   core.ChatService
	logger *zap.Logger
}

func NewChatHandler(chat core.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// ListChannels handles GET /chat/channels
func (h *ChatHandler) ListChannels(c *gin.Context) {
	channels, err := h.chat.ListChannels(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// CreateChannel handles POST /chat/channels
func (h *ChatHandler) CreateChannel(c *gin.Context) {
	var req models.ChannelRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.chat.CreateChannel(c.Request.Context(), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// ListMessages handles GET /chat/channels/:channelId/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	msgs, err := h.chat.ListMessages(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// SendMessage handles POST /chat/channels/:channelId/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.chat.SendMessage(c.Request.Context(), actor, c.Param("channelId"), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
