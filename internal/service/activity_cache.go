package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"network-match/internal/domain"
)

// ActivityCache guarda las señales de actividad por miembro con un TTL.
// Invalidate se llama cuando cambia el perfil o la actividad del miembro.
type ActivityCache interface {
	Get(ctx context.Context, memberID string) (domain.ActivitySignals, bool, error)
	Set(ctx context.Context, memberID string, signals domain.ActivitySignals) error
	Invalidate(ctx context.Context, memberID string) error
}

type cachedSignals struct {
	signals   domain.ActivitySignals
	expiresAt time.Time
}

type memoryActivityCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]cachedSignals
	now   func() time.Time
}

func NewMemoryActivityCache(ttl time.Duration) ActivityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &memoryActivityCache{
		ttl:   ttl,
		items: make(map[string]cachedSignals),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (c *memoryActivityCache) Get(_ context.Context, memberID string) (domain.ActivitySignals, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[memberID]
	if !ok {
		return domain.ActivitySignals{}, false, nil
	}
	if c.now().After(item.expiresAt) {
		delete(c.items, memberID)
		return domain.ActivitySignals{}, false, nil
	}
	return item.signals, true, nil
}

func (c *memoryActivityCache) Set(_ context.Context, memberID string, signals domain.ActivitySignals) error {
	if strings.TrimSpace(memberID) == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[memberID] = cachedSignals{signals: signals, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *memoryActivityCache) Invalidate(_ context.Context, memberID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, memberID)
	return nil
}

type redisActivityCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisActivityCache(client *redis.Client, ttl time.Duration) ActivityCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisActivityCache{
		client: client,
		ttl:    ttl,
		prefix: "activity:signals:",
	}
}

func (c *redisActivityCache) Get(ctx context.Context, memberID string) (domain.ActivitySignals, bool, error) {
	if strings.TrimSpace(memberID) == "" {
		return domain.ActivitySignals{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, c.prefix+memberID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ActivitySignals{}, false, nil
	}
	if err != nil {
		return domain.ActivitySignals{}, false, err
	}

	var signals domain.ActivitySignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return domain.ActivitySignals{}, false, err
	}
	return signals, true, nil
}

func (c *redisActivityCache) Set(ctx context.Context, memberID string, signals domain.ActivitySignals) error {
	if strings.TrimSpace(memberID) == "" {
		return nil
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+memberID, data, c.ttl).Err()
}

func (c *redisActivityCache) Invalidate(ctx context.Context, memberID string) error {
	if strings.TrimSpace(memberID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+memberID).Err()
}
