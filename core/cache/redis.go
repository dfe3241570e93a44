package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis bootstraps a Redis client with timeouts and verifies connectivity.
func NewRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return raw, nil
}

func optionsFromConfig(cfg Config) (*redis.Options, error) {
	url := strings.TrimSpace(cfg.URL)
	address := strings.TrimSpace(cfg.Address)
	if url == "" && address == "" {
		return nil, errors.New("redis url or address is required")
	}

	var opts *redis.Options
	if url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	d := time.Duration(timeout) * time.Second
	opts.DialTimeout = d
	opts.ReadTimeout = d
	opts.WriteTimeout = d
	return opts, nil
}
