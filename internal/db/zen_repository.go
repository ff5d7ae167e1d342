package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cse-connect/connect-backend/internal/models"
)

type firestoreZenRepository struct {
	client  *firestore.Client
	moments *Collection[models.ZenMoment, *models.ZenMoment]
}

// NewFirestoreZenRepository creates a ZenRepository over zenMoments/ and zenMeta/.
func NewFirestoreZenRepository(client *firestore.Client) ZenRepository {
	return &firestoreZenRepository{
		client:  client,
		moments: NewCollection[models.ZenMoment](client.Collection(zenCollection), "createdAt", firestore.Desc),
	}
}

func (r *firestoreZenRepository) Moments() Store[models.ZenMoment] {
	return r.moments
}

func (r *firestoreZenRepository) metaRef() *firestore.DocumentRef {
	return r.client.Collection(zenMetaCollection).Doc(zenMetaDoc)
}

// AutoQuoteMeta returns nil, nil when no auto quote was ever generated.
func (r *firestoreZenRepository) AutoQuoteMeta(ctx context.Context) (*models.ZenMeta, error) {
	snap, err := r.metaRef().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read zen meta: %w", err)
	}
	var meta models.ZenMeta
	if err := snap.DataTo(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode zen meta: %w", err)
	}
	return &meta, nil
}

var errQuoteFresh = errors.New("auto quote still fresh")

func (r *firestoreZenRepository) SeedAutoQuote(ctx context.Context, now time.Time, interval time.Duration, moment *models.ZenMoment) (bool, error) {
	metaRef := r.metaRef()
	momentRef := r.client.Collection(zenCollection).NewDoc()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(metaRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			var meta models.ZenMeta
			if err := snap.DataTo(&meta); err != nil {
				return err
			}
			if !meta.LastGeneratedAt.IsZero() && now.Sub(meta.LastGeneratedAt) < interval {
				return errQuoteFresh
			}
		}

		moment.CreatedAt = now
		if err := tx.Create(momentRef, moment); err != nil {
			return err
		}
		return tx.Set(metaRef, map[string]interface{}{
			"lastGeneratedAt": now,
			"lastQuote":       moment.Text,
			"lastAuthor":      moment.QuoteAuthor,
		}, firestore.MergeAll)
	})
	if errors.Is(err, errQuoteFresh) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to seed auto quote: %w", err)
	}
	moment.SetID(momentRef.ID)
	return true, nil
}
