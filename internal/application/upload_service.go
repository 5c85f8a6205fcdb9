package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultUploadMaxBytes is the largest image accepted by UploadAvatar.
const DefaultUploadMaxBytes int64 = 5 << 20

var (
	ErrUploadNoFile          = errors.New("no file provided")
	ErrUploadUnsupportedType = errors.New("file must be a jpeg, png or webp image")
	ErrUploadTooLarge        = errors.New("file is too large")
	ErrUploadNotConfigured   = errors.New("image storage is not configured")
	ErrUploadFailed          = errors.New("upload failed")
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectUploader stores r under objectPath and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type UploadService struct {
	Uploader ObjectUploader
	MaxBytes int64
	Logger   *logrus.Logger
}

func NewUploadService(up ObjectUploader, maxBytes int64, logger *logrus.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &UploadService{Uploader: up, MaxBytes: maxBytes, Logger: logger}
}

// UploadAvatar checks the image by its content, not its declared type, and
// stores it under avatars/<uuid>.<ext>.
func (s *UploadService) UploadAvatar(ctx context.Context, r io.Reader) (string, error) {
	if s.Uploader == nil {
		return "", ErrUploadNotConfigured
	}
	if r == nil {
		return "", ErrUploadNoFile
	}
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read: %v", ErrUploadFailed, err)
	}
	if len(data) == 0 {
		return "", ErrUploadNoFile
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrUploadTooLarge
	}
	mime := mimetype.Detect(data)
	ext, ok := imageExtensions[mime.String()]
	if !ok {
		return "", ErrUploadUnsupportedType
	}

	objectPath := path.Join("avatars", uuid.NewString()+"."+ext)
	url, err := s.Uploader.Upload(ctx, objectPath, mime.String(), bytes.NewReader(data))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Error("avatar upload failed")
		}
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return url, nil
}
