package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisInvalidator_Keys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	inv := NewRedisInvalidator(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, []string{"dashboard:year-range"}, inv.keys)
	assert.Equal(t, []string{"dashboard:stats:*"}, inv.patterns)
}

func TestRedisInvalidator_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	inv := NewRedisInvalidator(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := inv.InvalidateDashboards(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard:stats:*")
}

func TestNoopInvalidator(t *testing.T) {
	assert.NoError(t, NoopInvalidator{}.InvalidateDashboards(context.Background()))
}
