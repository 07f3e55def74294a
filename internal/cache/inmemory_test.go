package cache

import (
	"context"
	"testing"
	"time"

	"github.com/papertrails/papertrails/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCacheAdd(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(&config.Configuration{Cache: config.CacheConfig{Enabled: true}})

	key := GenerateKey(PrefixReminder, "agr_1", "2026-01-12", "on")
	assert.Equal(t, "reminder:v1::agr_1:2026-01-12:on", key)

	assert.True(t, c.Add(ctx, key, true, time.Hour))
	assert.False(t, c.Add(ctx, key, true, time.Hour), "second add of the same key must be rejected")

	c.Delete(ctx, key)
	assert.True(t, c.Add(ctx, key, true, time.Hour))
}

func TestInMemoryCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(&config.Configuration{})

	c.Set(ctx, "k", 1, 0)
	_, found := c.Get(ctx, "k")
	assert.False(t, found)

	assert.True(t, c.Add(ctx, "k", 1, 0))
	assert.True(t, c.Add(ctx, "k", 1, 0))
}
