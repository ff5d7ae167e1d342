package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/models"
)

func TestIsValidE164(t *testing.T) {
	valid := []string{"+14155550100", "+442071838750", "+12", " +14155550100 "}
	invalidNumbers := []string{"", "14155550100", "+0123456", "+1 415 555 0100", "+1234567890123456", "+"}
	for _, p := range valid {
		assert.True(t, IsValidE164(p), p)
	}
	for _, p := range invalidNumbers {
		assert.False(t, IsValidE164(p), p)
	}
}

func TestEnsureUserDisplayNameFallbacks(t *testing.T) {
	members := allowlist.NewMembers([]allowlist.Member{{Email: "bob@uni.edu", Name: "Bob Smith"}})
	users := newFakeUserRepo()
	svc := NewUserService(users, members, zap.NewNop())
	ctx := context.Background()

	u, err := svc.EnsureUser(ctx, models.Actor{UID: "1", Email: " Bob@Uni.edu", DisplayName: "Robert"})
	require.NoError(t, err)
	assert.Equal(t, "Robert", u.DisplayName)
	assert.Equal(t, "bob@uni.edu", u.Email)

	u, err = svc.EnsureUser(ctx, models.Actor{UID: "1", Email: "bob@uni.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", u.DisplayName)

	u, err = svc.EnsureUser(ctx, models.Actor{UID: "2", Email: "anon@uni.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Member", u.DisplayName)
}

func TestUpdateProfilePhone(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &models.User{UID: "u1", DisplayName: "Jane"}
	svc := NewUserService(users, allowlist.NewMembers(nil), zap.NewNop())
	ctx := context.Background()

	bad := "555-0100"
	_, err := svc.UpdateProfile(ctx, "u1", models.UpdateProfileRequest{Phone: &bad})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	good := "+14155550100"
	u, err := svc.UpdateProfile(ctx, "u1", models.UpdateProfileRequest{Phone: &good})
	require.NoError(t, err)
	assert.Equal(t, good, u.Phone)

	empty := ""
	u, err = svc.UpdateProfile(ctx, "u1", models.UpdateProfileRequest{Phone: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", u.Phone, "clearing the phone is allowed")

	_, err = svc.UpdateProfile(ctx, "u1", models.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOnlineUsersWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	users := newFakeUserRepo()
	users.users["fresh"] = &models.User{UID: "fresh", LastSeenAt: now.Add(-2 * time.Minute)}
	users.users["stale"] = &models.User{UID: "stale", LastSeenAt: now.Add(-10 * time.Minute)}

	svc := &userService{users: users, members: allowlist.NewMembers(nil), now: func() time.Time { return now }, logger: zap.NewNop()}
	online, err := svc.OnlineUsers(context.Background(), 5*time.Minute)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "fresh", online[0].UID)
	assert.Equal(t, now.Add(-5*time.Minute), users.since)
}
