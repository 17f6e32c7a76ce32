// Package cache keeps generated CLang documents so repeated exports of an
// unchanged strategy skip generation. Entries live in process memory first
// and in redis second, so every server instance can reuse them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/coachassist/backend/internal/clang"
	"github.com/coachassist/backend/internal/metrics"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "clang:"

type ExportCache struct {
	local *ristretto.Cache[string, string]
	rdb   *redis.Client
	ttl   time.Duration
}

// New returns a cache whose entries expire after ttl. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration) (*ExportCache, error) {
	local, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: 10000,
		MaxCost:     32 * 1024 * 1024,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create export cache: %w", err)
	}
	return &ExportCache{local: local, rdb: rdb, ttl: ttl}, nil
}

// Key identifies the rules generated from a model and options. doc must
// describe the model exactly, e.g. its JSON snapshot.
func Key(doc string, opts clang.Options) string {
	h := sha256.New()
	h.Write([]byte(doc))
	h.Write([]byte{0})
	b, _ := json.Marshal(opts)
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached document and the layer it came from ("l1" or "l2").
func (c *ExportCache) Get(ctx context.Context, key string) (string, string, bool) {
	if text, ok := c.local.Get(key); ok {
		return text, "l1", true
	}
	if c.rdb == nil {
		return "", "", false
	}

	text, err := c.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] redis get %s failed: %v", key, err)
		}
		return "", "", false
	}
	c.local.SetWithTTL(key, text, int64(len(text)), c.ttl)
	return text, "l2", true
}

// Set stores text in both layers. Redis failures are logged only.
func (c *ExportCache) Set(ctx context.Context, key, text string) {
	c.local.SetWithTTL(key, text, int64(len(text)), c.ttl)
	c.local.Wait()
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, text, c.ttl).Err(); err != nil {
		log.Printf("[CACHE] redis set %s failed: %v", key, err)
	}
}

// Generate returns the rules for doc, generating and caching them on a miss.
func (c *ExportCache) Generate(ctx context.Context, doc string, opts clang.Options, generate func() string) (text string, key string, source string) {
	key = Key(doc, opts)
	if text, source, ok := c.Get(ctx, key); ok {
		metrics.Generations.WithLabelValues(source).Inc()
		return text, key, source
	}

	start := time.Now()
	text = generate()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	metrics.Generations.WithLabelValues("generated").Inc()

	c.Set(ctx, key, text)
	return text, key, "generated"
}

func (c *ExportCache) Close() {
	c.local.Close()
}
