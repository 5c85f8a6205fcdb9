package middleware

import (
	"net"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
)

// AllowPrivateIP bypasses the limiter for addresses that are not publicly
// routable, where the builder usually runs next to its editor.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return helpers.IsInternalIP(parsed)
	}
}
