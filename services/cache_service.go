package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"techmart_server/structs"
	"techmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

const catalogCacheKey = "catalog:products"

// CacheService provides Redis caching with connection pooling and retry
// logic. It backs session revocation, the catalog cache and rate limiting.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(cfg),
	}
}

func getRedisClient(cfg *structs.Config) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // ms
		base := 100        // ms

		backoff := base * (1 << attempt)
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)
		if jitter < 0 {
			jitter = -jitter
		}

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key; a missing key returns "" without error.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// RevokeSession marks a session id dead until the token itself expires, so
// a signed-out token cannot be replayed.
func (cs *CacheService) RevokeSession(sessionID uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.RevokedCacheTTL
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}

	key := fmt.Sprintf("revoked:%s", sessionID)
	return cs.Set(key, "true", ttl)
}

// IsSessionRevoked checks whether a session id has been revoked.
func (cs *CacheService) IsSessionRevoked(sessionID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("revoked:%s", sessionID.String())
	val, err := cs.Get(key)
	if err != nil {
		return false, err
	}

	return val == "true", nil
}

// GetCatalog returns the cached product list, or nil on a miss.
func (cs *CacheService) GetCatalog() ([]tables.Product, error) {
	val, err := cs.Get(catalogCacheKey)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	var products []tables.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SetCatalog stores the product list for the configured TTL.
func (cs *CacheService) SetCatalog(products []tables.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return cs.Set(catalogCacheKey, data, cs.config.Cache.CatalogTTL)
}

// InvalidateCatalog drops the cached product list after an admin write.
func (cs *CacheService) InvalidateCatalog() error {
	return cs.Delete(catalogCacheKey)
}

// IncrementRateLimit atomically increments a rate limit counter, setting
// the window expiry on the first hit.
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}
		return nil
	}, 3)

	return int(result), err
}

// Health pings Redis so the readiness probe can report cache state.
func (cs *CacheService) Health() error {
	ctx, cancel := context.WithTimeout(redisCtx, 2*time.Second)
	defer cancel()
	return cs.client.Ping(ctx).Err()
}
