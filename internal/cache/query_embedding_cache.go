package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// QueryEmbeddingCache keeps recently computed query embeddings in Redis so
// repeated searches for the same text skip a provider round trip. Entries
// expire on their own; a miss is never an error.
type QueryEmbeddingCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewQueryEmbeddingCache(client *redisv9.Client, ttl time.Duration) *QueryEmbeddingCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &QueryEmbeddingCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *QueryEmbeddingCache) Get(ctx context.Context, query string) ([]float32, bool, error) {
	raw, err := c.client.Get(ctx, c.key(query)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get query embedding failed: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached embedding failed: %w", err)
	}
	return vector, true, nil
}

func (c *QueryEmbeddingCache) Set(ctx context.Context, query string, vector []float32) error {
	payload, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("marshal embedding cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(query), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set query embedding failed: %w", err)
	}
	return nil
}

func (c *QueryEmbeddingCache) key(query string) string {
	sum := sha1.Sum([]byte(query))
	return "search:embedding:" + hex.EncodeToString(sum[:])
}
