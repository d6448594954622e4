package cache

import (
	"context"
	"testing"
	"time"

	"github.com/diillson/dancart-api/internal/infra/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type cachedUser struct {
	OpenID string `json:"openId"`
	Role   string `json:"role"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute, metrics.NewAPIMetrics(prometheus.NewRegistry()), zaptest.NewLogger(t))

	var dest cachedUser
	found, err := c.Get(ctx, "user:admin-dev", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	original := &cachedUser{OpenID: "admin-dev", Role: "admin"}
	require.NoError(t, c.Set(ctx, "user:admin-dev", original, time.Minute))
	original.Role = "user"

	found, err = c.Get(ctx, "user:admin-dev", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "admin", dest.Role)

	require.NoError(t, c.Delete(ctx, "user:admin-dev"))
	found, _ = c.Get(ctx, "user:admin-dev", &dest)
	assert.False(t, found)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute, nil, zaptest.NewLogger(t))

	require.NoError(t, c.Set(ctx, "k", 1, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoOpCache(t *testing.T) {
	var c Cache = &NoOpCache{}
	var v int
	require.NoError(t, c.Set(context.Background(), "k", 1, time.Minute))
	found, err := c.Get(context.Background(), "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}
