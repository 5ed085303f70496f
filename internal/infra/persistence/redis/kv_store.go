// Package redis stores key-value pairs in Redis so several client processes can share state.
package redis

import (
	"context"

	"storefront/internal/domain/repository"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// KVStore is a repository.KeyValueStore backed by Redis strings.
type KVStore struct {
	client redis.UniversalClient
	prefix string
}

var _ repository.KeyValueStore = (*KVStore)(nil)

// New wraps client. Keys are namespaced with prefix.
func New(client redis.UniversalClient, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "ping redis %s", addr)
	}

	return New(client, prefix), nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %s", key)
	}

	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(s.client.Set(ctx, s.prefix+key, value, 0).Err(), "set %s", key)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.Del(ctx, s.prefix+key).Err(), "delete %s", key)
}

// Close releases the connection pool.
func (s *KVStore) Close() error {
	return errors.WithStack(s.client.Close())
}
