package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-builder/internal/container"
	"github.com/oksasatya/go-portfolio-builder/internal/interface/middleware"
)

// NewEngine builds the gin engine with the global middleware and every
// module registered under /api.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())

	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r, c.Logger)
	// softer per-IP ceiling across the whole API
	reg.Use(middleware.RateLimit(c.Redis, cfg.RateLimitMax*10, cfg.RateLimitWindow, middleware.KeyByIP(cfg.StateNamespace), middleware.AllowPrivateIP()))
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
