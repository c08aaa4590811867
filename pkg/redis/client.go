package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonny/rugscan/pkg/config"
)

// ErrDisabled is returned by Ping on a client built with REDIS_ENABLED=false
var ErrDisabled = errors.New("redis disabled")

// Client wraps a go-redis connection that may be switched off by config.
// Every helper in this package degrades to a no-op on a disabled client.
// ⭐ SSOT: Redis 연결은 여기서만 관리
type Client struct {
	rdb *redis.Client
}

// New connects and pings Redis, or returns a disabled client
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{}, nil
	}

	rdb := redis.NewClient(options(cfg.Redis))

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewFromClient(rdb), nil
}

// options maps config onto go-redis settings.
// Cache and limiter calls sit on the scan path, so timeouts stay short.
func options(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
}

// NewFromClient wraps an existing connection; nil yields a disabled client
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Enabled reports whether commands will reach a server
func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Ping checks the connection
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection, if any
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

// Redis exposes the underlying client to the stores in this module
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
