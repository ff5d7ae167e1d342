package models

import "time"

// SMS delivery outcomes written back onto an alert by a broadcast.
const (
	SMSStatusSent    = "sent"
	SMSStatusSkipped = "skipped"
	SMSStatusFailed  = "failed"
)

// Alert is a document in alerts.
type Alert struct {
	ID        string    `json:"id" firestore:"-"`
	AuthorUID string    `json:"authorUid" firestore:"authorUid"`
	Message   string    `json:"message" firestore:"message"`
	SMSStatus string    `json:"smsStatus,omitempty" firestore:"smsStatus,omitempty"`
	SMSError  string    `json:"smsError,omitempty" firestore:"smsError,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (a *Alert) SetID(id string) { a.ID = id }

// BroadcastResult is returned to the caller of sendBroadcastSms.
// Sent and Failed are omitted when SMS is not configured.
type BroadcastResult struct {
	Configured bool `json:"configured"`
	Sent       *int `json:"sent,omitempty"`
	Failed     *int `json:"failed,omitempty"`
}

// BroadcastEvent is published after a broadcast settles.
type BroadcastEvent struct {
	AlertID   string    `json:"alertId"`
	CallerUID string    `json:"callerUid"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	At        time.Time `json:"at"`
}
