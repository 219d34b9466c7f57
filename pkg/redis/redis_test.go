package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/smartmoney/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	assert.False(t, client.Enabled())
	assert.Nil(t, client.Redis())
	assert.NoError(t, client.Close())
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"MarginKey", MarginKey("600519"), "margin:600519"},
		{"HoldingKey", HoldingKey("600519"), "holding:600519"},
		{"FlowKey", FlowKey("600519"), "flow:600519"},
		{"BarsKey", BarsKey("600519", "2024-01-01", "2024-03-01"), "bars:600519:2024-01-01:2024-03-01"},
		{"ValuationKey", ValuationKey("600519"), "valuation:600519"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}

	cache := NewCache(disabledClient(t), "smartmoney")
	assert.Equal(t, "smartmoney:cache:flow:000858", cache.key(FlowKey("000858")))
}
