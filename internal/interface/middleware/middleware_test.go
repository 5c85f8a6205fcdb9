package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serve(mw gin.HandlerFunc, h gin.HandlerFunc, setup func(*http.Request)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/", h)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	id := uuid.NewString()
	var seen string
	w := serve(RequestIDMiddleware(), func(c *gin.Context) { seen = c.GetString("request_id") },
		func(r *http.Request) { r.Header.Set(RequestIDHeader, id) })
	assert.Equal(t, id, seen)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	w = serve(RequestIDMiddleware(), func(c *gin.Context) {},
		func(r *http.Request) { r.Header.Set(RequestIDHeader, "not-a-uuid") })
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
	assert.NoError(t, uuid.Validate(w.Header().Get(RequestIDHeader)))
}

func TestRealIPPrefersProxyHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"forwarded", map[string]string{"X-Forwarded-For": " 198.51.100.1 , 10.0.0.1"}, "198.51.100.1"},
		{"garbage falls back", map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			serve(RealIP(), func(c *gin.Context) { got = c.GetString("real_ip") }, func(r *http.Request) {
				for k, v := range tt.headers {
					r.Header.Set(k, v)
				}
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateLimitWithoutRedisFailsOpen(t *testing.T) {
	mw := RateLimit(nil, 1, 0, KeyByIP("p:"), nil)
	for i := 0; i < 3; i++ {
		w := serve(mw, func(c *gin.Context) { c.Status(http.StatusNoContent) }, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"127.0.0.1": true, "10.1.2.3": true, "203.0.113.7": false, "": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = ""
		c.Set("real_ip", ip)
		assert.Equal(t, want, allow(c), ip)
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 29, remaining(30, 1))
	assert.Equal(t, 0, remaining(30, 30))
	assert.Equal(t, 0, remaining(30, 31))
}

func TestRetrySeconds(t *testing.T) {
	assert.Equal(t, 0, retrySeconds(-time.Millisecond))
	assert.Equal(t, 1, retrySeconds(200*time.Millisecond))
	assert.Equal(t, 60, retrySeconds(time.Minute))
}
