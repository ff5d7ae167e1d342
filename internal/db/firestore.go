package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Collection names as they exist in the project.
const (
	usersCollection     = "users"
	feedCollection      = "feedPosts"
	commentsCollection  = "comments"
	projectsCollection  = "projects"
	questionsCollection = "questions"
	answersCollection   = "answers"
	linksCollection     = "links"
	tubesCollection     = "tubes"
	channelsCollection  = "chatChannels"
	messagesCollection  = "messages"
	alertsCollection    = "alerts"
	zenCollection       = "zenMoments"
	zenMetaCollection   = "zenMeta"
	allowlistCollection = "allowlist"

	zenMetaDoc = "autoQuote"
)

// Clients bundles the Firestore and Auth clients created from one app.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// NewClients opens the Firestore and Auth clients of app.
func NewClients(ctx context.Context, app *firebase.App) (*Clients, error) {
	if app == nil {
		return nil, errors.New("NewClients: firebase app cannot be nil")
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	return &Clients{Firestore: fs, Auth: authClient}, nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

func wrapNotFound(err error, what, id string) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s '%s': %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("%s '%s': %w", what, id, err)
}
