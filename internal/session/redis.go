package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/cinesuggest/web/internal/model"
)

const maxUpdateRetries = 5

// ErrConflict is returned when an update lost the race too many times.
var ErrConflict = errors.New("session update conflict")

// RedisStore keeps sessions as JSON under session:<id> with a sliding TTL.
// Updates run in a WATCH transaction and are retried when another writer
// touched the key first.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redisClient, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decode(data)
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	key := sessionKey(id)
	var result *State

	txf := func(tx *redis.Tx) error {
		st := New(id)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("failed to load session: %w", err)
		default:
			if st, err = decode(data); err != nil {
				return err
			}
		}

		if err := fn(st); err != nil {
			return err
		}

		payload, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = st
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.redis.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to update session %s: %w", id, ErrConflict)
}
