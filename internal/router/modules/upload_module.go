package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-portfolio-builder/internal/interface/http"
	"github.com/oksasatya/go-portfolio-builder/internal/interface/middleware"
)

type UploadModule struct {
	Handler   *handlers.UploadHandler
	Redis     *redis.Client
	KeyPrefix string
	Limit     int
	Window    time.Duration
}

func (m *UploadModule) Name() string { return "upload" }

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, m.Limit, m.Window, middleware.KeyByIPAndPath(m.KeyPrefix), middleware.AllowPrivateIP())
	rg.POST("/upload-avatar", rl, m.Handler.UploadAvatar)
}
