package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/application"
	"github.com/oksasatya/go-portfolio-builder/pkg/response"
)

type UploadHandler struct {
	Svc    *application.UploadService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// UploadAvatar stores the multipart "file" field and returns its URL. The
// editor puts the URL into hero.avatar.imageUrl.
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeUploadError(c, application.ErrUploadNoFile)
		return
	}
	if fh.Size > h.Svc.MaxBytes {
		writeUploadError(c, application.ErrUploadTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeUploadError(c, application.ErrUploadNoFile)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), f)
	if err != nil {
		writeUploadError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"imageUrl": url}, "avatar uploaded", nil)
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUploadNoFile),
		errors.Is(err, application.ErrUploadUnsupportedType),
		errors.Is(err, application.ErrUploadTooLarge):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrUploadNotConfigured):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, application.ErrUploadFailed.Error(), nil)
	}
}
