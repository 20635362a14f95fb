package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// AuthCache fronts the users table for basic-auth lookups. Entries are
// stored in a single hash keyed by "email:password_hash" -> user id.
type AuthCache struct {
	client  *redis.Client
	authKey string
}

type Config struct {
	Addr     string
	Password string
	AuthKey  string
}

func NewAuthCache(cfg Config) (*AuthCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	authKey := cfg.AuthKey
	if authKey == "" {
		authKey = "users:auth"
	}

	return &AuthCache{client: rdb, authKey: authKey}, nil
}

// GetUserIDByAuth returns the cached user id for the credential pair,
// or an error on miss.
func (c *AuthCache) GetUserIDByAuth(ctx context.Context, email, passwordHash string) (string, error) {
	field := authField(email, passwordHash)
	id, err := c.client.HGet(ctx, c.authKey, field).Result()
	if err != nil {
		return "", fmt.Errorf("auth cache miss for %s: %w", email, err)
	}
	return id, nil
}

// SetUserAuth caches the credential pair after a successful database check.
func (c *AuthCache) SetUserAuth(ctx context.Context, email, passwordHash, userID string) error {
	return c.client.HSet(ctx, c.authKey, authField(email, passwordHash), userID).Err()
}

func (c *AuthCache) Close() error {
	return c.client.Close()
}

func authField(email, passwordHash string) string {
	return strings.ToLower(email) + ":" + passwordHash
}
