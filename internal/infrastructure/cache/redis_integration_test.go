//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedis_RoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedis(client, time.Minute)
	require.NoError(t, c.Set(ctx, "dashboard:2026-03", payload{Orders: 7}))
	require.NoError(t, c.Set(ctx, "menu:x", payload{Orders: 1}))

	var got payload
	hit, err := c.Get(ctx, "dashboard:2026-03", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.Orders)

	require.NoError(t, c.Invalidate(ctx, "dashboard:"))
	hit, err = c.Get(ctx, "dashboard:2026-03", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, _ = c.Get(ctx, "menu:x", &got)
	assert.True(t, hit)
}
