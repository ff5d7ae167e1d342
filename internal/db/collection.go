package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Document is implemented by every model stored in a collection. The pointer
// constraint lets the helpers allocate a T and hand back its ID-stamped *T.
type Document[T any] interface {
	*T
	SetID(id string)
}

// Collection is a typed view over one Firestore collection with a fixed
// listing order.
type Collection[T any, PT Document[T]] struct {
	ref   *firestore.CollectionRef
	order string
	dir   firestore.Direction
}

// NewCollection binds ref to model T, ordered by field in direction dir.
func NewCollection[T any, PT Document[T]](ref *firestore.CollectionRef, field string, dir firestore.Direction) *Collection[T, PT] {
	return &Collection[T, PT]{ref: ref, order: field, dir: dir}
}

// Name is the collection ID, used to tag logs and live topics.
func (c *Collection[T, PT]) Name() string {
	return c.ref.ID
}

func (c *Collection[T, PT]) query() firestore.Query {
	return c.ref.OrderBy(c.order, c.dir)
}

// Get loads one document.
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: id cannot be empty: %w", c.ref.ID, ErrNotFound)
	}
	snap, err := c.ref.Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "failed to get "+c.ref.ID, id)
	}
	return decode[T, PT](snap)
}

// Create stores item under a new ID and stamps the ID onto it.
func (c *Collection[T, PT]) Create(ctx context.Context, item *T) (string, error) {
	ref := c.ref.NewDoc()
	if _, err := ref.Create(ctx, item); err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", c.ref.ID, err)
	}
	PT(item).SetID(ref.ID)
	return ref.ID, nil
}

// Update applies field updates and sets updatedAt to the server time.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, err := c.ref.Doc(id).Update(ctx, toUpdates(fields)); err != nil {
		return wrapNotFound(err, "failed to update "+c.ref.ID, id)
	}
	return nil
}

// Delete removes the document. Subcollections are left in place.
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	if _, err := c.ref.Doc(id).Delete(ctx); err != nil {
		return wrapNotFound(err, "failed to delete "+c.ref.ID, id)
	}
	return nil
}

// List returns the collection in its listing order.
func (c *Collection[T, PT]) List(ctx context.Context) ([]*T, error) {
	return queryAll[T, PT](ctx, c.query())
}

// Watch starts a snapshot listener on the ordered collection.
func (c *Collection[T, PT]) Watch(ctx context.Context) Stream {
	return newSnapshotStream[T, PT](ctx, c.query())
}

func toUpdates(fields map[string]interface{}) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys)+1)
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}
	if _, ok := fields["updatedAt"]; !ok {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	}
	return updates
}

func decode[T any, PT Document[T]](snap *firestore.DocumentSnapshot) (*T, error) {
	var item T
	if err := snap.DataTo(&item); err != nil {
		return nil, fmt.Errorf("failed to decode %s '%s': %w", snap.Ref.Parent.ID, snap.Ref.ID, err)
	}
	PT(&item).SetID(snap.Ref.ID)
	return &item, nil
}

func decodeAll[T any, PT Document[T]](snaps []*firestore.DocumentSnapshot) ([]*T, error) {
	items := make([]*T, 0, len(snaps))
	for _, snap := range snaps {
		item, err := decode[T, PT](snap)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func queryAll[T any, PT Document[T]](ctx context.Context, q firestore.Query) ([]*T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	items := []*T{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate query: %w", err)
		}
		item, err := decode[T, PT](snap)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
