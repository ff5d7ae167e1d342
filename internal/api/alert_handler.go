package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/middleware"
	"github.com/cse-connect/connect-backend/internal/models"
)

// AlertHandler handles alerts and their SMS broadcast.
type AlertHandler struct {
	alerts core.AlertService
	logger *zap.Logger
}

func NewAlertHandler(alerts core.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{alerts: alerts, logger: logger}
}

// List handles GET /alerts
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alerts.List(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// Create handles POST /alerts
func (h *AlertHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.AlertRequest
	if !bindJSON(c, &req) {
		return
	}
	alert, err := h.alerts.Create(c.Request.Context(), actor, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// Broadcast handles POST /alerts/:alertId/broadcast
func (h *AlertHandler) Broadcast(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	res, err := h.alerts.SendBroadcastSMS(c.Request.Context(), &actor, c.Param("alertId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type callableRequest struct {
	Data struct {
		AlertID string `json:"alertId"`
	} `json:"data"`
}

type callableError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendBroadcastSMSCallable handles POST /functions/sendBroadcastSms using
// the Firebase callable wire format: {"data": {...}} in, {"result": ...}
// or {"error": {"status", "message"}} out.
func (h *AlertHandler) SendBroadcastSMSCallable(c *gin.Context) {
	var req callableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": callableError{Status: statusInvalidArgument, Message: "Bad Request"}})
		return
	}

	var caller *models.Actor
	if actor, ok := middleware.Actor(c); ok {
		caller = &actor
	}

	res, err := h.alerts.SendBroadcastSMS(c.Request.Context(), caller, req.Data.AlertID)
	if err != nil {
		code, status := callableStatus(err)
		msg := err.Error()
		if status == statusInternal {
			h.logger.Error("sendBroadcastSms failed", zap.String("alertId", req.Data.AlertID), zap.Error(err))
			msg = "INTERNAL"
		}
		c.JSON(code, gin.H{"error": callableError{Status: status, Message: msg}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
