package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/metrics"
	"github.com/cse-connect/connect-backend/internal/models"
)

// Gatekeeper decides whether an email may use the hub.
type Gatekeeper interface {
	Check(ctx context.Context, email string) allowlist.Decision
}

// TokenRevoker signs a user out everywhere.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type accessService struct {
	gate    Gatekeeper
	users   UserService
	revoker TokenRevoker
	logger  *zap.Logger
}

// NewAccessService creates the sign-in state machine. revoker may be nil.
func NewAccessService(gate Gatekeeper, users UserService, revoker TokenRevoker, logger *zap.Logger) AccessService {
	return &accessService{gate: gate, users: users, revoker: revoker, logger: logger}
}

// Session moves the caller from loading to signedOut, allowed or denied.
// A denied caller is signed out; profile upsert failures never block an
// allowed one.
func (s *accessService) Session(ctx context.Context, actor *models.Actor) (*models.Session, error) {
	if actor == nil {
		return &models.Session{Status: models.AccessSignedOut}, nil
	}

	d := s.gate.Check(ctx, actor.Email)
	metrics.AccessDecision(d.Outcome.String())

	if !d.Admitted() {
		s.logger.Info("access denied", zap.String("email", d.Email), zap.String("reason", d.Reason))
		if s.revoker != nil {
			if err := s.revoker.RevokeRefreshTokens(ctx, actor.UID); err != nil {
				s.logger.Warn("failed to revoke tokens", zap.String("uid", actor.UID), zap.Error(err))
			}
		}
		return &models.Session{
			Status:       models.AccessDenied,
			DeniedEmail:  d.Email,
			DeniedReason: d.Reason,
		}, nil
	}

	if d.Outcome == allowlist.Defer {
		s.logger.Debug("allowlist unreadable, deferring to store rules", zap.String("email", d.Email))
	}

	session := &models.Session{Status: models.AccessAllowed}
	user, err := s.users.EnsureUser(ctx, *actor)
	if err != nil {
		s.logger.Warn("failed to ensure user profile", zap.String("uid", actor.UID), zap.Error(err))
		return session, nil
	}
	session.User = user
	return session, nil
}
