package jenkins

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// CacheType represents the type of cache backend
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents NATS KV cache
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching
	CacheTypeNone CacheType = "none"
)

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 * time.Hour
)

// Static cache configuration errors
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrCacheDisabled        = errors.New("cache disabled")
)

// CacheConfig configures the response cache backend
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// TTL applied to cached entries. Zero means DefaultCacheTTL.
	TTL time.Duration

	// Memory cache configuration
	Memory *MemoryCacheConfig

	// NATS KV cache configuration
	NATS *NATSKVConfig
}

// MemoryCacheConfig configures the in-memory cache
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of items in the cache
	MaxSize int
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:   CacheTypeMemory,
		TTL:    DefaultCacheTTL,
		Memory: &MemoryCacheConfig{MaxSize: DefaultCacheSize},
	}
}

// EntryTTL returns the configured TTL, falling back to the default
func (c *CacheConfig) EntryTTL() time.Duration {
	if c == nil || c.TTL <= 0 {
		return DefaultCacheTTL
	}
	return c.TTL
}

// NewCacheFromConfig creates a cache backend from configuration
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		return NewNoOpCache(), nil
	}

	switch config.Type {
	case CacheTypeMemory:
		maxSize := DefaultCacheSize
		if config.Memory != nil && config.Memory.MaxSize > 0 {
			maxSize = config.Memory.MaxSize
		}
		return NewMemoryCache(maxSize), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}
		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NoOpCache is a cache that does nothing
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always reports a miss
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
