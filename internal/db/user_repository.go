package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cse-connect/connect-backend/internal/models"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a UserRepository over users/.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "failed to get user", uid)
	}
	return decode[models.User](snap)
}

func (r *firestoreUserRepository) Ensure(ctx context.Context, u *models.User) (bool, error) {
	if u.UID == "" {
		return false, errors.New("uid cannot be empty for Ensure operation")
	}
	ref := r.client.Collection(usersCollection).Doc(u.UID)

	created := false
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = false
		_, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		data := map[string]interface{}{
			"uid":         u.UID,
			"email":       u.Email,
			"displayName": u.DisplayName,
			"photoURL":    u.PhotoURL,
			"lastSeenAt":  firestore.ServerTimestamp,
		}
		if status.Code(err) == codes.NotFound {
			data["createdAt"] = firestore.ServerTimestamp
			created = true
		}
		return tx.Set(ref, data, firestore.MergeAll)
	})
	if err != nil {
		return false, fmt.Errorf("failed to ensure user '%s': %w", u.UID, err)
	}
	return created, nil
}

func (r *firestoreUserRepository) UpdateProfile(ctx context.Context, uid string, fields map[string]interface{}) error {
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, toUpdates(fields))
	if err != nil {
		return wrapNotFound(err, "failed to update user", uid)
	}
	return nil
}

func (r *firestoreUserRepository) Touch(ctx context.Context, uid string) error {
	_, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"lastSeenAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update presence for '%s': %w", uid, err)
	}
	return nil
}

func (r *firestoreUserRepository) SeenSince(ctx context.Context, since time.Time) ([]*models.User, error) {
	q := r.client.Collection(usersCollection).
		Where("lastSeenAt", ">=", since).
		OrderBy("lastSeenAt", firestore.Desc)
	return queryAll[models.User](ctx, q)
}

// PhoneNumbers scans every profile and returns the non-empty phone numbers
// in document order.
func (r *firestoreUserRepository) PhoneNumbers(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var phones []string
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		if phone, ok := snap.Data()["phone"].(string); ok && phone != "" {
			phones = append(phones, phone)
		}
	}
	return phones, nil
}
