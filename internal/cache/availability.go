package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache guarda o snapshot de horários livres de um dia.
// A invalidação é por geração: cada reserva/cancelamento incrementa o
// contador do serviço e as chaves antigas simplesmente expiram.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    60 * time.Second,
	}
}

func genKey(serviceID uint) string {
	return fmt.Sprintf("avail:gen:%d", serviceID)
}

func (c *AvailabilityCache) generation(ctx context.Context, serviceID uint) int64 {
	gen, err := c.client.Get(ctx, genKey(serviceID)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

func (c *AvailabilityCache) slotKey(ctx context.Context, serviceID uint, date string, subServiceID *uint) string {
	sub := uint(0)
	if subServiceID != nil {
		sub = *subServiceID
	}
	return fmt.Sprintf("avail:%d:%d:%s:%d", serviceID, c.generation(ctx, serviceID), date, sub)
}

// Get devolve (slots, true) em cache hit. Qualquer erro de Redis vira
// cache miss — a disponibilidade sempre pode ser recalculada do banco.
func (c *AvailabilityCache) Get(ctx context.Context, serviceID uint, date string, subServiceID *uint) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.slotKey(ctx, serviceID, date, subServiceID)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, serviceID uint, date string, subServiceID *uint, slots []string) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.client.Set(ctx, c.slotKey(ctx, serviceID, date, subServiceID), raw, c.ttl)
}

// Invalidate descarta todos os snapshots do serviço de uma vez.
func (c *AvailabilityCache) Invalidate(ctx context.Context, serviceID uint) {
	if c == nil || c.client == nil {
		return
	}

	c.client.Incr(ctx, genKey(serviceID))
}
