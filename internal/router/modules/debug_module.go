package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-portfolio-builder/internal/interface/middleware"
)

type DebugModule struct {
	Redis     *redis.Client
	KeyPrefix string
}

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(m.KeyPrefix), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
