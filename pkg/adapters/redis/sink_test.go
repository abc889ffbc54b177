package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/redis"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisSink_Contract(t *testing.T) {
	_, client := setup(t)

	sink := redis.NewFromClient(client)
	ports.RunArtifactSinkContract(t, sink)
}

func TestRedisSink_KeysAreScopedByRun(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	a := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithRunID("run-a"))
	b := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithRunID("run-b"))

	require.NoError(t, a.Write(ctx, "trace1.txt", []byte("a")))
	require.NoError(t, b.Write(ctx, "trace1.txt", []byte("b")))

	assert.True(t, mr.Exists("test:run-a:trace1.txt"))
	assert.True(t, mr.Exists("test:run-b:trace1.txt"))

	require.NoError(t, a.Reset(ctx))
	assert.False(t, mr.Exists("test:run-a:trace1.txt"))

	got, err := b.Read(ctx, "trace1.txt")
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

func TestRedisSink_TTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	sink := redis.NewFromClient(client, redis.WithRunID("ttl"), redis.WithTTL(time.Minute))
	require.NoError(t, sink.Write(ctx, "trace1.txt", []byte("x")))

	mr.FastForward(2 * time.Minute)

	names, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisSink_GeneratesRunID(t *testing.T) {
	_, client := setup(t)

	a := redis.NewFromClient(client)
	b := redis.NewFromClient(client)
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}
