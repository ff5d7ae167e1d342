package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/live"
	"github.com/cse-connect/connect-backend/internal/models"
)

var e164 = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// IsValidE164 reports whether phone is an E.164 number such as +14155550100.
func IsValidE164(phone string) bool {
	return e164.MatchString(strings.TrimSpace(phone))
}

type userService struct {
	users   db.UserRepository
	members *allowlist.Members
	now     func() time.Time
	logger  *zap.Logger
}

// NewUserService creates a UserService. members supplies fallback display
// names for accounts without one.
func NewUserService(users db.UserRepository, members *allowlist.Members, logger *zap.Logger) UserService {
	return &userService{users: users, members: members, now: time.Now, logger: logger}
}

// EnsureUser upserts the profile of a signed-in member.
func (s *userService) EnsureUser(ctx context.Context, actor models.Actor) (*models.User, error) {
	email := allowlist.NormalizeEmail(actor.Email)
	name := actor.DisplayName
	if name == "" {
		name = s.members.DisplayName(email)
	}
	if name == "" {
		name = "Member"
	}

	u := &models.User{
		ID:          actor.UID,
		UID:         actor.UID,
		Email:       email,
		DisplayName: name,
		PhotoURL:    actor.PhotoURL,
	}
	created, err := s.users.Ensure(ctx, u)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("created user profile", zap.String("uid", actor.UID))
	}
	return u, nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetByID(ctx, uid)
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, req models.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, invalid("display name cannot be empty")
		}
		fields["displayName"] = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && !IsValidE164(phone) {
			return nil, invalid("phone must be in E.164 format, e.g. +14155550100")
		}
		fields["phone"] = phone
	}
	if len(fields) == 0 {
		return nil, invalid("nothing to update")
	}

	if err := s.users.UpdateProfile(ctx, uid, fields); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, uid)
}

func (s *userService) Heartbeat(ctx context.Context, uid string) error {
	return s.users.Touch(ctx, uid)
}

// OnlineUsers lists members seen within window, most recent first.
func (s *userService) OnlineUsers(ctx context.Context, window time.Duration) ([]*models.User, error) {
	users, err := s.users.SeenSince(ctx, s.now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("failed to list online users: %w", err)
	}
	return users, nil
}

// WatchOnline re-queries the presence window every interval instead of
// holding a live range query, whose lower bound would go stale.
func (s *userService) WatchOnline(ctx context.Context, window, every time.Duration) db.Stream {
	return live.NewPollStream(ctx, every, func(ctx context.Context) (interface{}, error) {
		users, err := s.OnlineUsers(ctx, window)
		if err != nil {
			return nil, err
		}
		if users == nil {
			users = []*models.User{}
		}
		return users, nil
	})
}
