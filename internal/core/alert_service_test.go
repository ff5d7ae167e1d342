package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/models"
	"github.com/cse-connect/connect-backend/pkg/cache"
)

type fakeRemote struct {
	allowed map[string]bool
	err     error
}

func (f *fakeRemote) InRemote(_ context.Context, email string) (bool, error) {
	return f.allowed[email], f.err
}

type fakeSender struct {
	mu    sync.Mutex
	fail  map[string]error
	sent  []string
	delay map[string]time.Duration
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	time.Sleep(f.delay[to])
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[to]; err != nil {
		return err
	}
	f.sent = append(f.sent, to+":"+body)
	return nil
}

// hangUpSender accepts every message, then cancels the caller's context as
// if the client disconnected mid-broadcast.
type hangUpSender struct {
	cancel context.CancelFunc
}

func (s hangUpSender) Send(context.Context, string, string) error {
	s.cancel()
	return nil
}

type recordingPublisher struct {
	bodies []string
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, body []byte) error {
	p.bodies = append(p.bodies, string(body))
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (cache.Result, error) {
	return cache.Result{Allowed: false, ResetIn: 30 * time.Second}, nil
}

type broadcastFixture struct {
	alerts *fakeAlertRepo
	users  *fakeUserRepo
	sender *fakeSender
	pub    *recordingPublisher
	caller *models.Actor
}

func newBroadcastFixture() *broadcastFixture {
	f := &broadcastFixture{
		alerts: newFakeAlertRepo(),
		users:  newFakeUserRepo(),
		sender: &fakeSender{fail: map[string]error{}, delay: map[string]time.Duration{}},
		pub:    &recordingPublisher{},
		caller: &models.Actor{UID: "u1", Email: "jane.doe@uni.edu"},
	}
	f.alerts.alerts.put("a1", &models.Alert{AuthorUID: "u1", Message: "Fire drill at 3pm"})
	return f
}

func (f *broadcastFixture) service(withSender bool) AlertService {
	deps := AlertDeps{
		Alerts:    f.alerts,
		Users:     f.users,
		Allowlist: &fakeRemote{allowed: map[string]bool{"jane.doe@uni.edu": true}},
		Publisher: f.pub,
		Queue:     "alerts.broadcast",
		Logger:    zap.NewNop(),
	}
	if withSender {
		deps.Sender = f.sender
	}
	return NewAlertService(deps)
}

func intPtr(n int) *int { return &n }

func TestBroadcastNotConfigured(t *testing.T) {
	f := newBroadcastFixture()
	f.users.phones = []string{"+15550000001"}

	res, err := f.service(false).SendBroadcastSMS(context.Background(), f.caller, "a1")
	require.NoError(t, err)
	assert.Equal(t, &models.BroadcastResult{Configured: false}, res)
	assert.Equal(t, smsStatus{status: "skipped", err: "SMS not configured"}, f.alerts.statuses["a1"])
	assert.Empty(t, f.sender.sent)
	require.Len(t, f.pub.bodies, 1)
	assert.Contains(t, f.pub.bodies[0], `"status":"skipped"`)
}

func TestBroadcastNoPhoneNumbers(t *testing.T) {
	f := newBroadcastFixture()

	res, err := f.service(true).SendBroadcastSMS(context.Background(), f.caller, "a1")
	require.NoError(t, err)
	assert.Equal(t, &models.BroadcastResult{Configured: true, Sent: intPtr(0), Failed: intPtr(0)}, res)
	assert.Equal(t, smsStatus{status: "skipped", err: "No phone numbers on file"}, f.alerts.statuses["a1"])
}

func TestBroadcastAllSent(t *testing.T) {
	f := newBroadcastFixture()
	f.users.phones = []string{"+15550000001", "+15550000002", "+15550000003"}

	res, err := f.service(true).SendBroadcastSMS(context.Background(), f.caller, "a1")
	require.NoError(t, err)
	assert.Equal(t, &models.BroadcastResult{Configured: true, Sent: intPtr(3), Failed: intPtr(0)}, res)
	assert.Equal(t, smsStatus{status: "sent"}, f.alerts.statuses["a1"])
	assert.ElementsMatch(t, []string{
		"+15550000001:Fire drill at 3pm",
		"+15550000002:Fire drill at 3pm",
		"+15550000003:Fire drill at 3pm",
	}, f.sender.sent)
}

func TestBroadcastPartialFailureReportsFirstInRecipientOrder(t *testing.T) {
	f := newBroadcastFixture()
	f.users.phones = []string{"+15550000001", "+15550000002", "+15550000003", "+15550000004"}
	f.sender.fail["+15550000002"] = errors.New("unreachable number 2")
	f.sender.fail["+15550000004"] = errors.New("unreachable number 4")
	// The later recipient fails first in time.
	f.sender.delay["+15550000002"] = 20 * time.Millisecond

	res, err := f.service(true).SendBroadcastSMS(context.Background(), f.caller, "a1")
	require.NoError(t, err)
	assert.Equal(t, &models.BroadcastResult{Configured: true, Sent: intPtr(2), Failed: intPtr(2)}, res)
	assert.Equal(t, smsStatus{status: "failed", err: "unreachable number 2"}, f.alerts.statuses["a1"])
}

func TestBroadcastDefaultMessage(t *testing.T) {
	f := newBroadcastFixture()
	f.alerts.alerts.put("blank", &models.Alert{AuthorUID: "u1"})
	f.users.phones = []string{"+15550000001"}

	_, err := f.service(true).SendBroadcastSMS(context.Background(), f.caller, "blank")
	require.NoError(t, err)
	assert.Equal(t, []string{"+15550000001:CS&E Alert"}, f.sender.sent)
}

func TestBroadcastRejections(t *testing.T) {
	f := newBroadcastFixture()
	svc := f.service(true)
	ctx := context.Background()

	_, err := svc.SendBroadcastSMS(ctx, nil, "a1")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.SendBroadcastSMS(ctx, &models.Actor{UID: "u2", Email: "stranger@uni.edu"}, "a1")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.SendBroadcastSMS(ctx, f.caller, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.SendBroadcastSMS(ctx, f.caller, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, f.alerts.statuses)
}

func TestBroadcastAllowlistReadError(t *testing.T) {
	f := newBroadcastFixture()
	svc := NewAlertService(AlertDeps{
		Alerts:    f.alerts,
		Users:     f.users,
		Allowlist: &fakeRemote{err: fmt.Errorf("unavailable")},
		Logger:    zap.NewNop(),
	})

	_, err := svc.SendBroadcastSMS(context.Background(), f.caller, "a1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPermissionDenied))
}

func TestBroadcastRateLimited(t *testing.T) {
	f := newBroadcastFixture()
	svc := NewAlertService(AlertDeps{
		Alerts:    f.alerts,
		Users:     f.users,
		Allowlist: &fakeRemote{allowed: map[string]bool{"jane.doe@uni.edu": true}},
		Limiter:   denyLimiter{},
		Logger:    zap.NewNop(),
	})

	_, err := svc.SendBroadcastSMS(context.Background(), f.caller, "a1")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestBroadcastRecordsOutcomeAfterCallerDisconnects(t *testing.T) {
	f := newBroadcastFixture()
	f.users.phones = []string{"+15550000001", "+15550000002"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewAlertService(AlertDeps{
		Alerts:    f.alerts,
		Users:     f.users,
		Allowlist: &fakeRemote{allowed: map[string]bool{"jane.doe@uni.edu": true}},
		Sender:    hangUpSender{cancel: cancel},
		Publisher: f.pub,
		Queue:     "alerts.broadcast",
		Logger:    zap.NewNop(),
	})

	res, err := svc.SendBroadcastSMS(ctx, f.caller, "a1")
	require.NoError(t, err)
	assert.Equal(t, &models.BroadcastResult{Configured: true, Sent: intPtr(2), Failed: intPtr(0)}, res)
	assert.Equal(t, smsStatus{status: "sent"}, f.alerts.statuses["a1"])
	require.Len(t, f.pub.bodies, 1)
	assert.Error(t, ctx.Err())
}
