package cards

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCard() Card {
	return Card{
		ID:        "0b7e2f4e-5d8a-4c1e-9a55-3f8f1f0c2d11",
		FileName:  "card-ana.png",
		Name:      "Ana",
		Greeting:  "¡Felices 30, Ana!",
		CreatedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		PNG:       []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, sampleCard()))
	got, err := s.Get(ctx, sampleCard().ID)
	require.NoError(t, err)
	assert.Equal(t, sampleCard(), got)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s, err := NewRedisStore(context.Background(), client, ttl)
	require.NoError(t, err)
	return s, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	require.NoError(t, s.Save(ctx, sampleCard()))
	assert.True(t, mr.Exists("card:"+sampleCard().ID))
	assert.True(t, mr.Exists("card:"+sampleCard().ID+":png"))

	got, err := s.Get(ctx, sampleCard().ID)
	require.NoError(t, err)
	assert.Equal(t, sampleCard().PNG, got.PNG)
	assert.Equal(t, sampleCard().FileName, got.FileName)
	assert.Equal(t, sampleCard().Greeting, got.Greeting)
	assert.True(t, sampleCard().CreatedAt.Equal(got.CreatedAt))
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	require.NoError(t, s.Save(ctx, sampleCard()))
	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, sampleCard().ID)
	assert.True(t, IsNotFound(err))
}

func TestRedisStoreMissing(t *testing.T) {
	s, _ := newRedisStore(t, time.Minute)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, err := NewRedisStore(context.Background(), client, time.Minute)
	assert.Error(t, err)
}
