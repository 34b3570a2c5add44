package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *AvailabilityCache {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAvailabilityCache(client)
}

func TestAvailabilityCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	slots := []string{"08:00", "08:15", "10:30"}
	c.Set(ctx, 1, "2026-09-14", nil, slots)

	got, ok := c.Get(ctx, 1, "2026-09-14", nil)
	require.True(t, ok)
	assert.Equal(t, slots, got)
}

func TestAvailabilityCache_MissOnUnknownKey(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get(context.Background(), 1, "2026-09-14", nil)
	assert.False(t, ok)
}

func TestAvailabilityCache_KeySeparatesSubService(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	sub := uint(7)
	c.Set(ctx, 1, "2026-09-14", nil, []string{"08:00"})
	c.Set(ctx, 1, "2026-09-14", &sub, []string{"09:00"})

	base, ok := c.Get(ctx, 1, "2026-09-14", nil)
	require.True(t, ok)
	withSub, ok := c.Get(ctx, 1, "2026-09-14", &sub)
	require.True(t, ok)

	assert.Equal(t, []string{"08:00"}, base)
	assert.Equal(t, []string{"09:00"}, withSub)
}

func TestAvailabilityCache_InvalidateDropsAllDates(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, "2026-09-14", nil, []string{"08:00"})
	c.Set(ctx, 1, "2026-09-15", nil, []string{"11:00"})
	c.Set(ctx, 2, "2026-09-14", nil, []string{"12:00"})

	c.Invalidate(ctx, 1)

	_, ok := c.Get(ctx, 1, "2026-09-14", nil)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 1, "2026-09-15", nil)
	assert.False(t, ok)

	// Outro serviço não é afetado
	other, ok := c.Get(ctx, 2, "2026-09-14", nil)
	require.True(t, ok)
	assert.Equal(t, []string{"12:00"}, other)
}

func TestAvailabilityCache_NilClientIsNoop(t *testing.T) {
	var c *AvailabilityCache

	c.Set(context.Background(), 1, "2026-09-14", nil, []string{"08:00"})
	_, ok := c.Get(context.Background(), 1, "2026-09-14", nil)
	assert.False(t, ok)
	c.Invalidate(context.Background(), 1)
}
