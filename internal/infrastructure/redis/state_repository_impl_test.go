package redis

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-builder/internal/infrastructure/repotest"
)

// Needs a reachable server: REDIS_ADDR=localhost:6379 go test ./...
func TestStateRepository(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(testContext(t)).Err())

	run := "test-" + uuid.NewString() + ":"
	repotest.Run(t, func(_ *testing.T, ns string) repository.StateRepository {
		return NewStateRepository(rdb, run+ns)
	})
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "portfolio-builder:", escapeGlob("portfolio-builder:"))
	assert.Equal(t, `a\*b\?\[c\]\\`, escapeGlob(`a*b?[c]\`))
}
