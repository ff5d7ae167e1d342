package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// Stream yields the full, ordered result set of a query every time it
// changes. Next blocks until the next change. Stop releases the listener.
type Stream interface {
	Next() (interface{}, error)
	Stop()
}

type snapshotStream[T any, PT Document[T]] struct {
	it *firestore.QuerySnapshotIterator
}

func newSnapshotStream[T any, PT Document[T]](ctx context.Context, q firestore.Query) *snapshotStream[T, PT] {
	return &snapshotStream[T, PT]{it: q.Snapshots(ctx)}
}

func (s *snapshotStream[T, PT]) Next() (interface{}, error) {
	qs, err := s.it.Next()
	if err != nil {
		return nil, err
	}
	snaps, err := qs.Documents.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot documents: %w", err)
	}
	return decodeAll[T, PT](snaps)
}

func (s *snapshotStream[T, PT]) Stop() {
	s.it.Stop()
}
