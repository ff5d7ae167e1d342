package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/middleware"
	"github.com/cse-connect/connect-backend/internal/models"
)

// SessionHandler reports the access state of the caller.
type SessionHandler struct {
	access core.AccessService
	logger *zap.Logger
}

func NewSessionHandler(access core.AccessService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{access: access, logger: logger}
}

// Evaluate handles POST /session. Anonymous callers get signedOut.
func (h *SessionHandler) Evaluate(c *gin.Context) {
	var actor *models.Actor
	if a, ok := middleware.Actor(c); ok {
		actor = &a
	}

	session, err := h.access.Session(c.Request.Context(), actor)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
