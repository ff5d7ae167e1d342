package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cse-connect/connect-backend/internal/middleware"
	"github.com/cse-connect/connect-backend/internal/models"
)

// currentActor returns the verified caller or answers 401.
func currentActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "User not found in context"})
		return models.Actor{}, false
	}
	return actor, true
}

// bindJSON decodes and validates the body into req or answers 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return false
	}
	return true
}
