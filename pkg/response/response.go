package response

import (
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the JSON envelope of every endpoint except downloads and
// the live feed.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

func envelope[T any](ctx *gin.Context, status int, ok bool, message string) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   ok,
		Message:   message,
	}
}

// Success writes the envelope with data and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	res := envelope[T](ctx, status, true, message)
	res.Data = data
	res.Meta = meta
	ctx.JSON(status, res)
	return res
}

// Error writes a failed envelope. err is usually a map of field details.
func Error[T any](ctx *gin.Context, status int, message string, err any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	res := envelope[T](ctx, status, false, message)
	res.Error = err
	ctx.JSON(status, res)
	return res
}

// Invalid answers 400 with details keyed by dotted field path, e.g.
// "content.about.skills[1].level".
func Invalid(ctx *gin.Context, message string, details map[string]string) {
	Error[any](ctx, http.StatusBadRequest, message, details)
}

// Download sends data as an attachment named filename.
func Download(ctx *gin.Context, filename, contentType string, data []byte) {
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	ctx.Data(http.StatusOK, contentType, data)
}
