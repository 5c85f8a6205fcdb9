package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-builder/internal/infrastructure/repotest"
	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
)

// Needs a disposable database: POSTGRES_TEST_DSN=postgres://... go test ./...
func TestStateRepository(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	require.NoError(t, RunMigrations(dsn, helpers.NewDiscardLogger()))
	pool, err := NewPool(testContext(t), dsn, 2, 0, time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	run := "test-" + uuid.NewString() + ":"
	repotest.Run(t, func(_ *testing.T, ns string) repository.StateRepository {
		return NewStateRepository(pool, run+ns)
	})
}
