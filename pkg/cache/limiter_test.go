package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCounter struct {
	hits map[string]int64
	err  error
}

func (m *memCounter) incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	m.hits[key]++
	return m.hits[key], window, nil
}

func TestWindowLimiter(t *testing.T) {
	store := &memCounter{hits: map[string]int64{}}
	l := newWindowLimiter(store, "broadcast:", 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "uid-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.Allow(ctx, "uid-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(3), res.Count)
	assert.Equal(t, time.Minute, res.ResetIn)

	res, err = l.Allow(ctx, "uid-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "keys are counted separately")
	assert.Equal(t, int64(1), store.hits["broadcast:uid-2"])
}

func TestWindowLimiterError(t *testing.T) {
	l := newWindowLimiter(&memCounter{err: errors.New("down")}, "", 1, time.Minute)
	_, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestUnlimited(t *testing.T) {
	res, err := Unlimited{}.Allow(context.Background(), "any")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
