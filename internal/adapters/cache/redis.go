package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by GetJSON when the key is absent.
var ErrMiss = errors.New("cache: miss")

type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", opts.Host, opts.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// JSONStore keeps JSON-encoded values under a common key prefix.
type JSONStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONStore(rdb *redis.Client, prefix string, ttl time.Duration) *JSONStore {
	return &JSONStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *JSONStore) Key(id string) string {
	return s.prefix + ":" + id
}

// GetJSON decodes the value stored for id into dst. A corrupted entry is
// deleted and reported as a miss.
func (s *JSONStore) GetJSON(ctx context.Context, id string, dst any) error {
	val, err := s.rdb.Get(ctx, s.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(val, dst); err != nil {
		s.rdb.Del(ctx, s.Key(id))
		return ErrMiss
	}
	return nil
}

func (s *JSONStore) SetJSON(ctx context.Context, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.Key(id), data, s.ttl).Err()
}

func (s *JSONStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.Key(id)).Err()
}
