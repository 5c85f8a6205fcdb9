package router

import (
	"expvar"
	"sync"
	"sync/atomic"

	"github.com/oksasatya/go-portfolio-builder/internal/container"
	handlers "github.com/oksasatya/go-portfolio-builder/internal/interface/http"
	"github.com/oksasatya/go-portfolio-builder/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every
// module with the registry. It should be called once during startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	prefix := cfg.StateNamespace

	live := handlers.NewLiveHub(c.Portfolio, c.Logger, cfg.CORSOrigins())
	c.OnClose(live.Close)

	r.Add(&modules.PortfolioModule{
		Handler:   handlers.NewPortfolioHandler(c.Portfolio, c.Logger),
		Transfer:  handlers.NewTransferHandler(c.Portfolio, c.Exports, c.Logger),
		Live:      live,
		Redis:     c.Redis,
		KeyPrefix: prefix,
		Limit:     cfg.RateLimitMax,
		Window:    cfg.RateLimitWindow,
	})
	r.Add(&modules.UploadModule{
		Handler:   handlers.NewUploadHandler(c.Uploads, c.Logger),
		Redis:     c.Redis,
		KeyPrefix: prefix,
		Limit:     cfg.RateLimitMax,
		Window:    cfg.RateLimitWindow,
	})

	if cfg.DebugMetricsEnabled {
		publishMetrics(func() any {
			return map[string]any{
				"state":         c.Portfolio.Stats(),
				"live_clients":  live.Clients(),
				"live_dropped":  live.Dropped(),
				"storage":       cfg.StorageDriver,
				"history_limit": cfg.HistoryLimit,
			}
		})
		r.Add(&modules.DebugModule{Redis: c.Redis, KeyPrefix: prefix})
	}
}

var (
	metricsOnce   sync.Once
	metricsSource atomic.Pointer[func() any]
)

// publishMetrics exposes fn as the "portfolio" expvar. expvar names are
// process global, so a later call replaces the source instead of
// publishing twice.
func publishMetrics(fn func() any) {
	metricsSource.Store(&fn)
	metricsOnce.Do(func() {
		expvar.Publish("portfolio", expvar.Func(func() any {
			if f := metricsSource.Load(); f != nil {
				return (*f)()
			}
			return nil
		}))
	})
}
