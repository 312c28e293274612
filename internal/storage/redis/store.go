// Package redis stores lifetrack values in a Redis database, one string key
// per value under the lifetrack: prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/storage"
)

const (
	markerKey      = "meta:initialized"
	defaultTimeout = 5 * time.Second
)

type Store struct {
	url     string
	opts    *redis.Options
	rdb     *redis.Client
	timeout time.Duration
}

// IsURL reports whether location looks like a Redis URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, "rediss://")
}

// New parses a redis:// or rediss:// URL. No connection is made until Init or Load.
func New(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return &Store{
		url:     url,
		opts:    opts,
		timeout: defaultTimeout,
	}, nil
}

func keyFor(key string) string {
	return constants.RedisKeyPrefix + key
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *Store) connect() error {
	if s.rdb != nil {
		return nil
	}
	rdb := redis.NewClient(s.opts)

	ctx, cancel := s.ctx()
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", s.opts.Addr, err)
	}
	s.rdb = rdb
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}

	ctx, cancel := s.ctx()
	defer cancel()

	created, err := s.rdb.SetNX(ctx, keyFor(markerKey), time.Now().UTC().Format(time.RFC3339), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to initialize redis store: %w", err)
	}
	if !created {
		return fmt.Errorf("%w at %s", storage.ErrAlreadyInitialized, s.opts.Addr)
	}
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}

	ctx, cancel := s.ctx()
	defer cancel()

	n, err := s.rdb.Exists(ctx, keyFor(markerKey)).Result()
	if err != nil {
		return fmt.Errorf("failed to read redis store: %w", err)
	}
	if n == 0 {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.rdb == nil {
		return nil
	}
	err := s.rdb.Close()
	s.rdb = nil
	return err
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if s.rdb == nil {
		return nil, false, storage.ErrNotLoaded
	}

	ctx, cancel := s.ctx()
	defer cancel()

	value, err := s.rdb.Get(ctx, keyFor(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Put(key string, value []byte) error {
	if s.rdb == nil {
		return storage.ErrNotLoaded
	}

	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.rdb.Set(ctx, keyFor(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// GetConfigPath returns the server address without credentials.
func (s *Store) GetConfigPath() string {
	return fmt.Sprintf("redis://%s/%d", s.opts.Addr, s.opts.DB)
}
