package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"andhara-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyFmt = "product:%d"
	productTTL    = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis
// is unreachable every lookup is a miss and writes are no-ops.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetProduct returns a cached product, or nil on miss.
func GetProduct(ctx context.Context, id int) *models.Product {
	if client == nil {
		return nil
	}
	raw, err := client.Get(ctx, fmt.Sprintf(productKeyFmt, id)).Bytes()
	if err != nil {
		return nil
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// SetProduct caches a product read.
func SetProduct(ctx context.Context, p *models.Product) {
	if client == nil || p == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(productKeyFmt, p.ID), raw, productTTL)
}

// InvalidateProduct drops a product from the cache after any write that
// touches it (update, toggle, stock change, purchase).
func InvalidateProduct(ctx context.Context, id int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(productKeyFmt, id))
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change/logout)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}
