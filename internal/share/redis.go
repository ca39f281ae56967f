package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisURL = "redis://localhost:6379"
	redisKeyPrefix  = "share:"
	scanBatch       = 100
)

// RedisStore keeps each share record in a hash at share:<code>.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(url string) (*RedisStore, error) {
	if url == "" {
		url = defaultRedisURL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func redisKey(code string) string {
	return redisKeyPrefix + code
}

// Put replaces the hash for r.Code atomically.
func (s *RedisStore) Put(ctx context.Context, r *Record) error {
	key := redisKey(r.Code)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		AttrCode, r.Code,
		AttrStorageKey, r.StorageKey,
		AttrCreatedAt, r.CreatedAt,
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put share %q: %w", r.Code, err)
	}
	return nil
}

// Get fetches a record by its code.
func (s *RedisStore) Get(ctx context.Context, code string) (*Record, error) {
	attrs, err := s.client.HGetAll(ctx, redisKey(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("get share %q: %w", code, err)
	}
	if len(attrs) == 0 {
		return nil, ErrNotFound
	}
	return recordFromAttributes(attrs), nil
}

// Exists returns true if a record with the given code is stored.
func (s *RedisStore) Exists(ctx context.Context, code string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKey(code)).Result()
	if err != nil {
		return false, fmt.Errorf("check share %q: %w", code, err)
	}
	return n > 0, nil
}

// ScanAll walks the share:* keyspace with SCAN. Unbounded: only meant for the admin listing.
func (s *RedisStore) ScanAll(ctx context.Context) ([]map[string]string, error) {
	out := make([]map[string]string, 0)
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		attrs, err := s.client.HGetAll(ctx, iter.Val()).Result()
		if isWrongType(err) {
			slog.WarnContext(ctx, "share: skipping non-hash key", slog.String("key", iter.Val()))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan share %q: %w", iter.Val(), err)
		}
		if len(attrs) == 0 {
			continue
		}
		out = append(out, attrs)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan shares: %w", err)
	}
	return out, nil
}

// isWrongType reports a WRONGTYPE reply, i.e. a key under the share prefix that is not a hash.
func isWrongType(err error) bool {
	var rerr redis.Error
	return errors.As(err, &rerr) && strings.HasPrefix(rerr.Error(), "WRONGTYPE")
}
