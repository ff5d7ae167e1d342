package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/metrics"
	"github.com/cse-connect/connect-backend/internal/models"
	"github.com/cse-connect/connect-backend/internal/sms"
	"github.com/cse-connect/connect-backend/pkg/cache"
	"github.com/cse-connect/connect-backend/pkg/messagequeue"
)

const (
	defaultAlertMessage = "CS&E Alert"
	smsNotConfigured    = "SMS not configured"
	smsNoRecipients     = "No phone numbers on file"
)

// RemoteAllowlist answers whether an email's sanitized key is on the
// remote allowlist.
type RemoteAllowlist interface {
	InRemote(ctx context.Context, email string) (bool, error)
}

// AlertDeps wires the collaborators of the alert service. Sender is nil
// when SMS credentials are missing; Publisher and Limiter may be nil.
type AlertDeps struct {
	Alerts    db.AlertRepository
	Users     db.UserRepository
	Allowlist RemoteAllowlist
	Sender    sms.Sender
	Publisher messagequeue.Publisher
	Queue     string
	Limiter   cache.Limiter
	Logger    *zap.Logger
}

type alertService struct {
	AlertDeps
	now func() time.Time
}

func NewAlertService(deps AlertDeps) AlertService {
	if deps.Publisher == nil {
		deps.Publisher = messagequeue.Discard{}
	}
	if deps.Limiter == nil {
		deps.Limiter = cache.Unlimited{}
	}
	return &alertService{AlertDeps: deps, now: time.Now}
}

func (s *alertService) List(ctx context.Context) ([]*models.Alert, error) {
	return s.Alerts.Alerts().List(ctx)
}

func (s *alertService) Watch(ctx context.Context) db.Stream {
	return s.Alerts.Alerts().Watch(ctx)
}

func (s *alertService) Create(ctx context.Context, actor models.Actor, req models.AlertRequest) (*models.Alert, error) {
	a := &models.Alert{
		AuthorUID: actor.UID,
		Message:   strings.TrimSpace(req.Message),
	}
	if _, err := s.Alerts.Alerts().Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SendBroadcastSMS texts an alert to every member with a phone number and
// records the outcome on the alert. Each send is attempted once.
func (s *alertService) SendBroadcastSMS(ctx context.Context, caller *models.Actor, alertID string) (*models.BroadcastResult, error) {
	if caller == nil || caller.Email == "" {
		return nil, ErrUnauthenticated
	}

	allowed, err := s.Allowlist.InRemote(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check allowlist: %w", err)
	}
	if !allowed {
		return nil, ErrPermissionDenied
	}

	limit, err := s.Limiter.Allow(ctx, caller.UID)
	if err != nil {
		s.Logger.Warn("broadcast rate limiter unavailable", zap.Error(err))
	} else if !limit.Allowed {
		return nil, fmt.Errorf("%w: retry in %s", ErrRateLimited, limit.ResetIn.Round(time.Second))
	}

	if strings.TrimSpace(alertID) == "" {
		return nil, invalid("alertId is required")
	}

	alert, err := s.Alerts.Alerts().Get(ctx, alertID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("alert not found: %w", ErrNotFound)
		}
		return nil, err
	}
	message := alert.Message
	if message == "" {
		message = defaultAlertMessage
	}

	if s.Sender == nil {
		if err := s.record(ctx, caller, alertID, models.SMSStatusSkipped, smsNotConfigured, 0, 0); err != nil {
			return nil, err
		}
		return &models.BroadcastResult{Configured: false}, nil
	}

	phones, err := s.Users.PhoneNumbers(ctx)
	if err != nil {
		return nil, err
	}
	if len(phones) == 0 {
		if err := s.record(ctx, caller, alertID, models.SMSStatusSkipped, smsNoRecipients, 0, 0); err != nil {
			return nil, err
		}
		return broadcastResult(0, 0), nil
	}

	sent, failed, firstErr := s.fanOut(ctx, phones, message)
	metrics.SMSDelivered(sent, failed)

	// The gateway has accepted the texts; the outcome must be stored even
	// if the caller has gone away.
	settled := context.WithoutCancel(ctx)
	if failed > 0 {
		err = s.record(settled, caller, alertID, models.SMSStatusFailed, firstErr, sent, failed)
	} else {
		err = s.record(settled, caller, alertID, models.SMSStatusSent, "", sent, failed)
	}
	if err != nil {
		return nil, err
	}
	return broadcastResult(sent, failed), nil
}

// fanOut sends to every number concurrently and waits for all of them.
// firstErr is the message of the first failure in recipient order.
func (s *alertService) fanOut(ctx context.Context, phones []string, message string) (sent, failed int, firstErr string) {
	errs := make([]error, len(phones))
	var wg sync.WaitGroup
	for i, to := range phones {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.Sender.Send(ctx, to, message)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			sent++
			continue
		}
		if failed == 0 {
			firstErr = err.Error()
			if firstErr == "" {
				firstErr = "Unknown error"
			}
		}
		failed++
	}
	return sent, failed, firstErr
}

func (s *alertService) record(ctx context.Context, caller *models.Actor, alertID, status, errMsg string, sent, failed int) error {
	if err := s.Alerts.SetSMSStatus(ctx, alertID, status, errMsg); err != nil {
		return err
	}
	metrics.Broadcast(status)
	s.Logger.Info("broadcast settled",
		zap.String("alertId", alertID),
		zap.String("status", status),
		zap.Int("sent", sent),
		zap.Int("failed", failed))

	event := models.BroadcastEvent{
		AlertID:   alertID,
		CallerUID: caller.UID,
		Status:    status,
		Error:     errMsg,
		Sent:      sent,
		Failed:    failed,
		At:        s.now().UTC(),
	}
	if err := messagequeue.PublishJSON(ctx, s.Publisher, s.Queue, event); err != nil {
		s.Logger.Warn("failed to publish broadcast event", zap.String("alertId", alertID), zap.Error(err))
	}
	return nil
}

func broadcastResult(sent, failed int) *models.BroadcastResult {
	return &models.BroadcastResult{Configured: true, Sent: &sent, Failed: &failed}
}
