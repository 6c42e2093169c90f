// Package redis provides a Redis-backed run store.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maximecaron/deepresearch/store"
)

// RedisRunStore implements store.RunStore using Redis.
type RedisRunStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "deepresearch:"
	TTL      time.Duration // Expiration for runs, default 0 (no expiration)
}

// NewRedisRunStore creates a new Redis run store.
func NewRedisRunStore(opts RedisOptions) *RedisRunStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "deepresearch:"
	}

	return &RedisRunStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisRunStore) runKey(id string) string {
	return fmt.Sprintf("%srun:%s", s.prefix, id)
}

func (s *RedisRunStore) indexKey() string {
	return s.prefix + "runs"
}

// Save stores a run record.
func (s *RedisRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.runKey(record.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), record.ID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.indexKey(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run to redis: %w", err)
	}
	return nil
}

// Load retrieves a run record by ID.
func (s *RedisRunStore) Load(ctx context.Context, id string) (*store.RunRecord, error) {
	data, err := s.client.Get(ctx, s.runKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load run from redis: %w", err)
	}

	var record store.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &record, nil
}

// List returns all run records, newest first.
func (s *RedisRunStore) List(ctx context.Context) ([]*store.RunRecord, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(ids) == 0 {
		return []*store.RunRecord{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.runKey(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	var records []*store.RunRecord
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Expired member still referenced by the index.
			continue
		}
		var record store.RunRecord
		if err := json.Unmarshal([]byte(str), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a run record.
func (s *RedisRunStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, s.runKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete run from redis: %w", err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	s.client.SRem(ctx, s.indexKey(), id)
	return nil
}

// Close closes the Redis connection.
func (s *RedisRunStore) Close() error {
	return s.client.Close()
}
