package cache

import (
	"appointment/pkg/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type Redis struct {
	client *redis.Client
}

func NewRedis(conf config.Redis) (*Redis, error) {
	opt, err := redis.ParseURL(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if conf.PoolSize > 0 {
		opt.PoolSize = conf.PoolSize
	}
	if conf.DialTimeout > 0 {
		opt.DialTimeout = conf.DialTimeout
	}
	if conf.ReadTimeout > 0 {
		opt.ReadTimeout = conf.ReadTimeout
	}
	if conf.WriteTimeout > 0 {
		opt.WriteTimeout = conf.WriteTimeout
	}
	// один запрос - одна попытка
	opt.MaxRetries = -1

	return &Redis{client: redis.NewClient(opt)}, nil
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get возвращает пустую строку, если ключа нет
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
