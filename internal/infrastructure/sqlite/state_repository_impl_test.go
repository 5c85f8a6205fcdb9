package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-builder/internal/infrastructure/repotest"
)

func TestStateRepository(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	repotest.Run(t, func(_ *testing.T, ns string) repository.StateRepository {
		return NewStateRepository(db, ns)
	})
}

func TestStateRepositorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewStateRepository(db, "app:").Put(testContext(t), "slot", []byte("saved")))
	require.NoError(t, Close(db))

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()
	v, err := NewStateRepository(db, "app:").Get(testContext(t), "slot")
	require.NoError(t, err)
	require.Equal(t, "saved", string(v))
}
