package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process report cache used when Redis is not configured.
// Values are stored as JSON so callers get their own copy on every hit.
type Memory struct {
	items *gocache.Cache
}

// NewMemory builds an in-process cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{items: gocache.New(ttl, 2*ttl)}
}

func (c *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.items.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw.([]byte), dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Memory) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	c.items.SetDefault(key, raw)
	return nil
}

// Invalidate drops every cached report.
func (c *Memory) Invalidate(_ context.Context) error {
	c.items.Flush()
	return nil
}
