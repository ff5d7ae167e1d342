package db

import (
	"context"
	"time"

	"github.com/cse-connect/connect-backend/internal/models"
)

// Store is the CRUD surface shared by every content collection.
type Store[T any] interface {
	Name() string
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) (string, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*T, error)
	Watch(ctx context.Context) Stream
}

// UserRepository stores member profiles and presence.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	// Ensure merge-writes the profile fields of u, stamping lastSeenAt and,
	// for a new document only, createdAt. It reports whether it created one.
	Ensure(ctx context.Context, u *models.User) (bool, error)
	UpdateProfile(ctx context.Context, uid string, fields map[string]interface{}) error
	Touch(ctx context.Context, uid string) error
	SeenSince(ctx context.Context, since time.Time) ([]*models.User, error)
	PhoneNumbers(ctx context.Context) ([]string, error)
}

// FeedRepository stores feed posts and their comments.
type FeedRepository interface {
	Posts() Store[models.FeedPost]
	Comments(postID string) Store[models.Comment]
	// MutateReactions runs fn on the current post inside one transaction and
	// writes back its reaction maps.
	MutateReactions(ctx context.Context, postID string, fn func(post *models.FeedPost) error) error
}

// QARepository stores questions and their answers.
type QARepository interface {
	Questions() Store[models.Question]
	Answers(questionID string) Store[models.Answer]
}

// ChatRepository stores channels and their messages.
type ChatRepository interface {
	Channels() Store[models.ChatChannel]
	Messages(channelID string) Store[models.Message]
}

// AlertRepository stores alerts and their SMS outcome.
type AlertRepository interface {
	Alerts() Store[models.Alert]
	// SetSMSStatus merges smsStatus and smsError; an empty errMsg deletes smsError.
	SetSMSStatus(ctx context.Context, alertID, status, errMsg string) error
}

// ZenRepository stores zen moments and the auto-quote bookkeeping document.
type ZenRepository interface {
	Moments() Store[models.ZenMoment]
	AutoQuoteMeta(ctx context.Context) (*models.ZenMeta, error)
	// SeedAutoQuote re-checks the interval and, if it elapsed, writes the
	// moment and the meta document in one transaction.
	SeedAutoQuote(ctx context.Context, now time.Time, interval time.Duration, moment *models.ZenMoment) (bool, error)
}

// AllowlistRepository answers membership lookups against allowlist/{key}.
type AllowlistRepository interface {
	// Exists reports whether the key document exists. Read errors other than
	// not-found are returned unwrapped so the caller can inspect the gRPC code.
	Exists(ctx context.Context, key string) (bool, error)
	Seed(ctx context.Context, entries []AllowlistEntry) (int, error)
}

// AllowlistEntry is one document to write under allowlist/{ID}.
type AllowlistEntry struct {
	ID    string
	Email string
	Kind  string // "sanitized" or "raw"
}
