package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shopfront/shared/pkg/cache"
)

type RedisStore struct {
	Redis *cache.Redis
}

func key(id string) string { return "session:" + id }

func (s *RedisStore) Get(ctx context.Context, id string) (Data, error) {
	b, err := s.Redis.GetBytes(ctx, key(id))
	if errors.Is(err, cache.ErrMiss) {
		return Data{}, ErrNotFound
	}
	if err != nil {
		return Data{}, err
	}
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, err
	}
	return d, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, d Data, ttl time.Duration) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.Redis.SetBytes(ctx, key(id), b, ttl)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Redis.Delete(ctx, key(id))
}
