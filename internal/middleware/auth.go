package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/models"
)

// ActorKey is the gin context key holding the verified models.Actor.
const ActorKey = "actor"

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware panics on a nil verifier; the server cannot secure any
// route without one.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if verifier == nil {
		panic("NewAuthMiddleware requires a token verifier")
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// VerifyToken rejects requests without a valid ID token.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken, msg := bearerToken(c)
		if idToken == "" {
			if msg == "" {
				msg = "Authorization header is required"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
			return
		}
		if !m.authenticate(c, idToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}
		c.Next()
	}
}

// OptionalToken sets the actor when a valid token is present and lets
// anonymous requests through. A token that fails verification is treated
// as absent.
func (m *AuthMiddleware) OptionalToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if idToken, _ := bearerToken(c); idToken != "" {
			m.authenticate(c, idToken)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, idToken string) bool {
	token, err := m.verifier.VerifyIDToken(c.Request.Context(), idToken)
	if err != nil {
		m.logger.Debug("id token rejected", zap.Error(err))
		return false
	}
	c.Set(ActorKey, ActorFromToken(token))
	return true
}

// ActorFromToken copies the standard profile claims off a verified token.
func ActorFromToken(token *auth.Token) models.Actor {
	actor := models.Actor{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		actor.Email = allowlist.NormalizeEmail(email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		actor.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		actor.PhotoURL = picture
	}
	return actor
}

// Actor returns the caller set by the auth middleware.
func Actor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

// bearerToken reads "Authorization: Bearer <token>", falling back to the
// token query parameter because browsers cannot set headers on WebSocket
// upgrades. msg explains a malformed header.
func bearerToken(c *gin.Context) (token, msg string) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", "Authorization header format must be 'Bearer {token}'"
		}
		return parts[1], ""
	}
	return c.Query("token"), ""
}
