// ABOUTME: Adapters from the Cache backends to the HTTP cache transport
// ABOUTME: Credentialed fetches get their own key space so private responses stay private

package standard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gregjones/httpcache"

	"feeder-resolver/core/interfaces"
)

const cacheOpTimeout = 5 * time.Second

// responseCache adapts a Cache backend to httpcache.Cache
type responseCache struct {
	store  interfaces.Cache
	ttl    time.Duration
	logger interfaces.Logger
}

func newResponseCache(store interfaces.Cache, ttl time.Duration, logger interfaces.Logger) *responseCache {
	return &responseCache{store: store, ttl: ttl, logger: logger}
}

// Get returns the stored response dump for key
func (c *responseCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			c.warn("Response cache read failed", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores a response dump
func (c *responseCache) Set(key string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.warn("Response cache write failed", key, err)
	}
}

// Delete removes a stored response
func (c *responseCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.store.Delete(ctx, key); err != nil {
		c.warn("Response cache delete failed", key, err)
	}
}

func (c *responseCache) warn(msg, key string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// scopedCache namespaces keys by a credential digest so an authenticated
// response is never served to a request without the same credentials
type scopedCache struct {
	inner  httpcache.Cache
	prefix string
}

func newScopedCache(inner httpcache.Cache, credentials string) *scopedCache {
	sum := sha256.Sum256([]byte(credentials))
	return &scopedCache{
		inner:  inner,
		prefix: "auth:" + hex.EncodeToString(sum[:]) + ":",
	}
}

// Get returns the stored response dump for key within the scope
func (c *scopedCache) Get(key string) ([]byte, bool) {
	return c.inner.Get(c.prefix + key)
}

// Set stores a response dump within the scope
func (c *scopedCache) Set(key string, data []byte) {
	c.inner.Set(c.prefix+key, data)
}

// Delete removes a stored response within the scope
func (c *scopedCache) Delete(key string) {
	c.inner.Delete(c.prefix + key)
}
