package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/cse-connect/connect-backend/internal/models"
)

type firestoreFeedRepository struct {
	client *firestore.Client
	posts  *Collection[models.FeedPost, *models.FeedPost]
}

// NewFirestoreFeedRepository creates a FeedRepository over feedPosts/.
func NewFirestoreFeedRepository(client *firestore.Client) FeedRepository {
	return &firestoreFeedRepository{
		client: client,
		posts:  NewCollection[models.FeedPost](client.Collection(feedCollection), "createdAt", firestore.Desc),
	}
}

func (r *firestoreFeedRepository) Posts() Store[models.FeedPost] {
	return r.posts
}

func (r *firestoreFeedRepository) Comments(postID string) Store[models.Comment] {
	ref := r.client.Collection(feedCollection).Doc(postID).Collection(commentsCollection)
	return NewCollection[models.Comment](ref, "createdAt", firestore.Asc)
}

func (r *firestoreFeedRepository) MutateReactions(ctx context.Context, postID string, fn func(post *models.FeedPost) error) error {
	ref := r.client.Collection(feedCollection).Doc(postID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return wrapNotFound(err, "post", postID)
		}
		post, err := decode[models.FeedPost](snap)
		if err != nil {
			return err
		}
		if err := fn(post); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "reactionCounts", Value: post.ReactionCounts},
			{Path: "reactionsBy", Value: post.ReactionsBy},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return fmt.Errorf("failed to toggle reaction on post '%s': %w", postID, err)
	}
	return nil
}
