package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/indianhorizon/tripplanner/internal/domain"
)

// keyPrefix namespaces session keys in a shared Redis.
const keyPrefix = "estimate:session:"

// maxUpdateRetries bounds the optimistic-lock retries of Update.
const maxUpdateRetries = 20

// RedisStore is a Store backed by Redis. Each session is one JSON value
// whose TTL is refreshed on every write, so multiple API replicas can serve
// the same session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the Redis instance at url (redis://...) and
// verifies it is reachable.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("session.NewRedisStore: parse url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("session.NewRedisStore: ping: %w", err)
	}
	return NewRedisStoreFromClient(client, ttl), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Create(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session.RedisStore.Create: encode: %w", err)
	}
	if err := r.client.Set(ctx, key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Create: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	s, err := load(ctx, r.client, id)
	if err != nil {
		return Session{}, fmt.Errorf("session.RedisStore.Get: %w", err)
	}
	return s, nil
}

// Update runs fn inside a WATCH/MULTI transaction on the session key and
// retries when another writer got there first.
func (r *RedisStore) Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (Session, error) {
	k := key(id)
	for range maxUpdateRetries {
		var (
			updated Session
			fnErr   error
		)
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			s, err := load(ctx, tx, id)
			if err != nil {
				return err
			}
			if fnErr = fn(&s); fnErr != nil {
				return fnErr
			}
			data, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, k, data, r.ttl)
				return nil
			})
			if err == nil {
				updated = s
			}
			return err
		}, k)

		switch {
		case fnErr != nil:
			return Session{}, fnErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		case err != nil:
			return Session{}, fmt.Errorf("session.RedisStore.Update: %w", err)
		}
		return updated, nil
	}
	return Session{}, fmt.Errorf("session.RedisStore.Update: %d conflicting writers, giving up", maxUpdateRetries)
}

func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("session.RedisStore.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session.RedisStore.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// getter is satisfied by both *redis.Client and the *redis.Tx of a WATCH.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads and decodes one session.
func load(ctx context.Context, c getter, id uuid.UUID) (Session, error) {
	data, err := c.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, domain.ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}
