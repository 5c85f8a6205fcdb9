// Package repotest holds the behaviour every StateRepository driver must
// share. Driver tests call Run with a factory whose repositories all point
// at the same backend.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
)

// Factory returns a repository scoped to namespace. Repositories from one
// factory share storage.
type Factory func(t *testing.T, namespace string) repository.StateRepository

func Run(t *testing.T, newRepo Factory) {
	t.Run("missing slot", func(t *testing.T) {
		r := newRepo(t, "missing:")
		_, err := r.Get(context.Background(), "nothing")
		assert.ErrorIs(t, err, repository.ErrSlotNotFound)
	})

	t.Run("put overwrites", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t, "overwrite:")
		require.NoError(t, r.Put(ctx, "slot", []byte("one")))
		require.NoError(t, r.Put(ctx, "slot", []byte("two")))

		v, err := r.Get(ctx, "slot")
		require.NoError(t, err)
		assert.Equal(t, "two", string(v))
	})

	t.Run("delete", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t, "delete:")
		require.NoError(t, r.Put(ctx, "slot", []byte("x")))
		require.NoError(t, r.Delete(ctx, "slot"))
		require.NoError(t, r.Delete(ctx, "slot"), "deleting a missing slot is not an error")

		_, err := r.Get(ctx, "slot")
		assert.ErrorIs(t, err, repository.ErrSlotNotFound)
	})

	t.Run("clear keeps other namespaces", func(t *testing.T) {
		ctx := context.Background()
		mine := newRepo(t, "app:")
		other := newRepo(t, "other:")
		require.NoError(t, mine.Put(ctx, "portfolio-content", []byte("{}")))
		require.NoError(t, mine.Put(ctx, "theme", []byte("dark")))
		require.NoError(t, other.Put(ctx, "theme", []byte("light")))

		require.NoError(t, mine.Clear(ctx))

		_, err := mine.Get(ctx, "portfolio-content")
		assert.ErrorIs(t, err, repository.ErrSlotNotFound)
		_, err = mine.Get(ctx, "theme")
		assert.ErrorIs(t, err, repository.ErrSlotNotFound)

		v, err := other.Get(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, "light", string(v))
	})

	t.Run("clear matches the namespace literally", func(t *testing.T) {
		ctx := context.Background()
		mine := newRepo(t, "glöb?*[a]:")
		other := newRepo(t, "glöbX-a:")
		require.NoError(t, mine.Put(ctx, "theme", []byte("dark")))
		require.NoError(t, other.Put(ctx, "theme", []byte("light")))

		require.NoError(t, mine.Clear(ctx))

		_, err := mine.Get(ctx, "theme")
		assert.ErrorIs(t, err, repository.ErrSlotNotFound)
		v, err := other.Get(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, "light", string(v))
	})

	t.Run("values are copied", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t, "copy:")
		in := []byte("abc")
		require.NoError(t, r.Put(ctx, "slot", in))
		in[0] = 'z'

		v, err := r.Get(ctx, "slot")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(v))
	})
}
