package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/config"
	"github.com/oksasatya/go-portfolio-builder/internal/application"
)

// Container carries the constructed components the router wires into
// modules. It is built once in main and passed down explicitly.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Redis     *redis.Client // nil disables rate limiting
	Portfolio *application.PortfolioService
	Uploads   *application.UploadService
	Exports   *application.ExportService

	closers []func()
}

// OnClose registers fn to run, in reverse order, when the container closes.
func (c *Container) OnClose(fn func()) {
	c.closers = append(c.closers, fn)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
