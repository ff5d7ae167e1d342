package models

import "time"

// User is a member profile stored under users/{uid}.
type User struct {
	ID          string    `json:"id" firestore:"-"` // Firebase Auth UID, also the document ID
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	PhotoURL    string    `json:"photoURL" firestore:"photoURL"`
	Phone       string    `json:"phone" firestore:"phone"` // E.164 or empty
	LastSeenAt  time.Time `json:"lastSeenAt" firestore:"lastSeenAt"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,omitempty"`
}

func (u *User) SetID(id string) { u.ID = id }

// Actor is the authenticated caller, taken from the verified ID token.
type Actor struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// AuthorName is the name stamped on documents the actor creates.
func (a Actor) AuthorName() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Email
}

// Access states reported by POST /session.
const (
	AccessLoading   = "loading"
	AccessAllowed   = "allowed"
	AccessSignedOut = "signedOut"
	AccessDenied    = "denied"
)

// Session is the access state of the caller.
type Session struct {
	Status       string `json:"status"`
	User         *User  `json:"user,omitempty"`
	DeniedEmail  string `json:"deniedEmail,omitempty"`
	DeniedReason string `json:"deniedReason,omitempty"`
}
