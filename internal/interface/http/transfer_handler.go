package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/application"
	"github.com/oksasatya/go-portfolio-builder/pkg/response"
)

// maxImportBytes bounds both raw and multipart import bodies.
const maxImportBytes = 10 << 20

type TransferHandler struct {
	Svc     *application.PortfolioService
	Exports *application.ExportService
	Logger  *logrus.Logger
}

func NewTransferHandler(svc *application.PortfolioService, exports *application.ExportService, logger *logrus.Logger) *TransferHandler {
	return &TransferHandler{Svc: svc, Exports: exports, Logger: logger}
}

func (h *TransferHandler) Export(c *gin.Context) {
	data, name, err := h.Svc.Export()
	if err != nil {
		h.logError(err, "export failed")
		response.Error[any](c, http.StatusInternalServerError, "export failed", nil)
		return
	}
	response.Download(c, name, "application/json; charset=utf-8", data)
}

// Import accepts the document as the raw body or as a multipart "file"
// field. Nothing changes unless the whole document is valid.
func (h *TransferHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	data, err := readImportBody(c)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			response.Error[any](c, http.StatusRequestEntityTooLarge, "document too large", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "no document provided", nil)
		return
	}
	view, err := h.Svc.Import(c.Request.Context(), data)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "portfolio imported", nil)
}

func readImportBody(c *gin.Context) ([]byte, error) {
	mt, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if !strings.HasPrefix(mt, "multipart/") {
		return io.ReadAll(c.Request.Body)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Bundle streams a zip with the rendered site.
func (h *TransferHandler) Bundle(c *gin.Context) {
	data, name, err := h.Exports.Bundle(c.Request.Context())
	if err != nil {
		h.logError(err, "bundle export failed")
		response.Error[any](c, http.StatusInternalServerError, "bundle export failed", nil)
		return
	}
	response.Download(c, name, "application/zip", data)
}

// EnqueueBundle hands the current document to the export worker.
func (h *TransferHandler) EnqueueBundle(c *gin.Context) {
	job, err := h.Exports.EnqueueBundle(c.Request.Context())
	if err != nil {
		if errors.Is(err, application.ErrExportQueueUnavailable) {
			response.Error[any](c, http.StatusServiceUnavailable, "export queue unavailable", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to enqueue", nil)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"jobId": job.JobID, "requestedAt": job.RequestedAt}, "export enqueued", nil)
}

func (h *TransferHandler) logError(err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
}
