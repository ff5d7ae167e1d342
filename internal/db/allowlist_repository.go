package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreAllowlistRepository struct {
	client *firestore.Client
}

// NewFirestoreAllowlistRepository creates an AllowlistRepository over allowlist/.
func NewFirestoreAllowlistRepository(client *firestore.Client) AllowlistRepository {
	return &firestoreAllowlistRepository{client: client}
}

func (r *firestoreAllowlistRepository) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	snap, err := r.client.Collection(allowlistCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return snap.Exists(), nil
}

// maxSeedWrites is the Firestore limit on writes in a single commit.
const maxSeedWrites = 500

// Seed merge-writes every entry in one transaction, so either the whole list
// lands or none of it does. Lists over maxSeedWrites are rejected up front.
func (r *firestoreAllowlistRepository) Seed(ctx context.Context, entries []AllowlistEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	if len(entries) > maxSeedWrites {
		return 0, fmt.Errorf("allowlist seed has %d writes, limit is %d", len(entries), maxSeedWrites)
	}

	coll := r.client.Collection(allowlistCollection)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, e := range entries {
			if err := tx.Set(coll.Doc(e.ID), map[string]interface{}{
				"email": e.Email,
				"key":   e.Kind,
			}, firestore.MergeAll); err != nil {
				return fmt.Errorf("failed to write allowlist entry '%s': %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
