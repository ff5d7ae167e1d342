package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/models"
)

// Gatekeeper decides whether an email may use the hub.
type Gatekeeper interface {
	Check(ctx context.Context, email string) allowlist.Decision
}

// RequireMember applies the allowlist to every request. It must run after
// VerifyToken.
func RequireMember(gate Gatekeeper, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "sign-in required"})
			return
		}

		d := gate.Check(c.Request.Context(), actor.Email)
		if !d.Admitted() {
			logger.Info("request denied by allowlist",
				zap.String("uid", actor.UID),
				zap.String("email", d.Email),
				zap.String("reason", d.Reason),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "access not granted", Details: d.Reason})
			return
		}
		c.Next()
	}
}
