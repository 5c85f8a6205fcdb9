package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-portfolio-builder/pkg/response"
)

// ipFromCtx prefers the address set by RealIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIP limits by client IP across all routes of the group.
func KeyByIP(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		return prefix + "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits by client IP and route, so an import burst does not
// eat into the upload budget.
func KeyByIPAndPath(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		return prefix + "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// AllowFunc reports whether a request bypasses the limiter.
type AllowFunc func(*gin.Context) bool

// INCR, PEXPIRE on the first hit of a window, and the time left, in one
// round trip.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// windowCounter counts hits per key in fixed windows.
type windowCounter struct {
	rdb    *redis.Client
	window time.Duration
}

func (w windowCounter) hit(ctx context.Context, key string) (count int, left time.Duration, err error) {
	res, err := hitScript.Run(ctx, w.rdb, []string{key}, w.window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	return int(res[0]), time.Duration(res[1]) * time.Millisecond, nil
}

// RateLimit allows max requests per key and window, counted in Redis. It
// fails open when Redis is missing or erroring: the builder stays usable
// without it.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	counter := windowCounter{rdb: rdb, window: window}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}
		count, left, err := counter.hit(c.Request.Context(), keyFn(c))
		if err != nil {
			c.Next()
			return
		}

		reset := retrySeconds(left)
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining(max, count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))
		if count > max {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func remaining(max, count int) int {
	if count >= max {
		return 0
	}
	return max - count
}

// retrySeconds rounds up so clients never retry inside the window.
func retrySeconds(left time.Duration) int {
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}
