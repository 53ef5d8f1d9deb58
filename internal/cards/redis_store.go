package cards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps card metadata and PNG bytes in redis under
// card:<id> and card:<id>:png, both expiring after ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore checks the connection and returns the store.
func NewRedisStore(ctx context.Context, client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func metaKey(id string) string { return "card:" + id }
func pngKey(id string) string  { return "card:" + id + ":png" }

func (s *RedisStore) Save(ctx context.Context, c Card) error {
	meta, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, metaKey(c.ID), meta, s.ttl)
		pipe.Set(ctx, pngKey(c.ID), c.PNG, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save card %s: %w", c.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Card, error) {
	res, err := s.client.MGet(ctx, metaKey(id), pngKey(id)).Result()
	if err != nil {
		return Card{}, fmt.Errorf("load card %s: %w", id, err)
	}
	meta, ok1 := res[0].(string)
	data, ok2 := res[1].(string)
	if !ok1 || !ok2 {
		return Card{}, ErrNotFound
	}

	var c Card
	if err := json.Unmarshal([]byte(meta), &c); err != nil {
		return Card{}, fmt.Errorf("decode card %s: %w", id, err)
	}
	c.PNG = []byte(data)
	return c, nil
}

// IsNotFound reports whether err means the card does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, redis.Nil)
}
