package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/models"
)

// UserHandler serves the caller's profile and the presence list.
type UserHandler struct {
	users          core.UserService
	presenceWindow time.Duration
	logger         *zap.Logger
}

func NewUserHandler(users core.UserService, presenceWindow time.Duration, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, presenceWindow: presenceWindow, logger: logger}
}

// GetMe handles GET /me.
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(c.Request.Context(), actor.UID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe handles PATCH /me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), actor.UID, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Heartbeat handles POST /me/heartbeat.
func (h *UserHandler) Heartbeat(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.users.Heartbeat(c.Request.Context(), actor.UID); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Online handles GET /users/online.
func (h *UserHandler) Online(c *gin.Context) {
	users, err := h.users.OnlineUsers(c.Request.Context(), h.presenceWindow)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
