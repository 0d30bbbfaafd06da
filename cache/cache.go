package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
)

const oneHour = time.Hour

const oneDay = oneHour * 24

// Expire24HR - 24 hours
const Expire24HR = oneDay

// Cache redis cache
type Cache struct {
	Client *redis.Client
}

// New create new cache
func New(config *Config) *Cache {
	cache := &Cache{}
	cache.Client = redis.NewClient(&redis.Options{
		Addr:     getCacheURL(config),
		Password: config.Password,
		DB:       config.DB,
	})
	return cache
}

// Close cache
func (c *Cache) Close() error {
	return c.Client.Close()
}

// Ping checks the connection
func (c *Cache) Ping() error {
	return c.Client.Ping().Err()
}

func getCacheURL(config *Config) string {
	return fmt.Sprintf("%s:%s", config.Host, config.Port)
}

// GetValue - get value string by key. A missing key returns "" and no error.
func (c *Cache) GetValue(key string) (string, error) {
	val, err := c.Client.Get(key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetValue - set value string by key
func (c *Cache) SetValue(key string, val string) error {
	return c.Client.Set(key, val, 0).Err()
}

// Claim sets key only when it is not already present. It reports whether
// this caller set it.
func (c *Cache) Claim(key string, ttl time.Duration) (bool, error) {
	return c.Client.SetNX(key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (c *Cache) Publish(channel string, val string) error {
	return c.Client.Publish(channel, val).Err()
}
