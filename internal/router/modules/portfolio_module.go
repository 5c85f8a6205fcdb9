package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-portfolio-builder/internal/interface/http"
	"github.com/oksasatya/go-portfolio-builder/internal/interface/middleware"
)

// PortfolioModule serves the builder state under /api/portfolio.
type PortfolioModule struct {
	Handler  *handlers.PortfolioHandler
	Transfer *handlers.TransferHandler
	Live     *handlers.LiveHub

	Redis     *redis.Client
	KeyPrefix string
	Limit     int
	Window    time.Duration
}

func (m *PortfolioModule) Name() string { return "portfolio" }

func (m *PortfolioModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.Redis, m.Limit, m.Window, middleware.KeyByIPAndPath(m.KeyPrefix), middleware.AllowPrivateIP())

	p := rg.Group("/portfolio")
	{
		p.GET("", m.Handler.Get)
		p.PATCH("/sections/:section", m.Handler.UpdateSection)

		p.POST("/projects", m.Handler.AddProject)
		p.PATCH("/projects/:id", m.Handler.UpdateProject)
		p.DELETE("/projects/:id", m.Handler.DeleteProject)

		p.PUT("/selection", m.Handler.SetSelection)
		p.PUT("/editing", m.Handler.SetEditing)
		p.PUT("/theme", m.Handler.SetTheme)

		p.POST("/undo", m.Handler.Undo)
		p.POST("/redo", m.Handler.Redo)
		p.POST("/reset", m.Handler.Reset)

		p.GET("/export", m.Transfer.Export)
		p.POST("/import", limiter, m.Transfer.Import)
		p.GET("/export/bundle", m.Transfer.Bundle)
		p.POST("/export/bundle/jobs", limiter, m.Transfer.EnqueueBundle)

		p.GET("/live", m.Live.Serve)
	}
}
