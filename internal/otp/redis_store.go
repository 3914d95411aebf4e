package otp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "otp:cancel:"

// RedisStore keeps challenges in redis so expiry survives restarts
// and processes can share state behind a load balancer.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, ch *Challenge, ttl time.Duration) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = redis.KeepTTL
	}
	return s.client.Set(ctx, keyPrefix+ch.Phone, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*Challenge, error) {
	data, err := s.client.Get(ctx, keyPrefix+phone).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ch Challenge
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, keyPrefix+phone).Err()
}

var _ Store = (*RedisStore)(nil)
