package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cse-connect/connect-backend/internal/db"
)

// MaxImageBytes bounds an inlined image after base64 decoding.
const MaxImageBytes = 700 * 1024

// loadOwned fetches id and fails with ErrForbidden unless uid authored it.
func loadOwned[T any](ctx context.Context, store db.Store[T], id, uid string, author func(*T) string) (*T, error) {
	item, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if author(item) != uid {
		return nil, fmt.Errorf("%w: %s '%s'", ErrForbidden, store.Name(), id)
	}
	return item, nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// checkImage accepts an empty value or a base64 image data URI of at most
// MaxImageBytes decoded bytes.
func checkImage(dataURI string) error {
	if dataURI == "" {
		return nil
	}
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return invalid("image must be a base64 image data URI")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+2 {
		return invalid("image too large, use an image under 700 KB")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return invalid("image is not valid base64")
	}
	if len(raw) > MaxImageBytes {
		return invalid("image too large, use an image under 700 KB")
	}
	return nil
}

// cleanTags trims tags and drops empty and repeated ones.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

type mappedStream struct {
	db.Stream
	fn func(interface{}) interface{}
}

func (m mappedStream) Next() (interface{}, error) {
	items, err := m.Stream.Next()
	if err != nil {
		return nil, err
	}
	return m.fn(items), nil
}

// mapStream applies fn to every result set of s.
func mapStream(s db.Stream, fn func(interface{}) interface{}) db.Stream {
	return mappedStream{Stream: s, fn: fn}
}
