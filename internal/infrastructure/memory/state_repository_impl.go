package memory

import (
	"context"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
)

// StateRepository keeps slots in a go-cache instance without expiry. The
// cache may be shared; only keys under the namespace belong to it.
type StateRepository struct {
	c  *cache.Cache
	ns string
}

// NewCache returns a cache that never expires or sweeps items.
func NewCache() *cache.Cache {
	return cache.New(cache.NoExpiration, 0)
}

func NewStateRepository(c *cache.Cache, namespace string) *StateRepository {
	if c == nil {
		c = NewCache()
	}
	return &StateRepository{c: c, ns: namespace}
}

func (r *StateRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := r.c.Get(r.ns + key)
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	b, _ := v.([]byte)
	return append([]byte(nil), b...), nil
}

func (r *StateRepository) Put(_ context.Context, key string, value []byte) error {
	r.c.Set(r.ns+key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

func (r *StateRepository) Delete(_ context.Context, key string) error {
	r.c.Delete(r.ns + key)
	return nil
}

func (r *StateRepository) Clear(_ context.Context) error {
	for k := range r.c.Items() {
		if strings.HasPrefix(k, r.ns) {
			r.c.Delete(k)
		}
	}
	return nil
}
