package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/pkg/bundle"
)

var ErrExportQueueUnavailable = errors.New("export queue is not available")

// ExportJob is the message put on the export queue. It carries the whole
// document so the worker never reads live state.
type ExportJob struct {
	JobID       string    `json:"jobId"`
	RequestedAt time.Time `json:"requestedAt"`
	Document    Document  `json:"document"`
}

type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ExportService builds static site bundles, either inline or through the
// export worker.
type ExportService struct {
	Portfolio *PortfolioService
	Bundles   *bundle.Builder
	Queue     JobPublisher
	Logger    *logrus.Logger
}

func NewExportService(p *PortfolioService, b *bundle.Builder, q JobPublisher, logger *logrus.Logger) *ExportService {
	return &ExportService{Portfolio: p, Bundles: b, Queue: q, Logger: logger}
}

// Bundle renders the current state and returns the archive with its file
// name.
func (e *ExportService) Bundle(ctx context.Context) ([]byte, string, error) {
	doc := e.Portfolio.Document()
	zip, err := BuildBundle(ctx, e.Bundles, doc)
	if err != nil {
		return nil, "", err
	}
	return zip, BundleFileName(doc.Content.Hero.Name), nil
}

// EnqueueBundle publishes the current document for the export worker.
func (e *ExportService) EnqueueBundle(ctx context.Context) (ExportJob, error) {
	if e.Queue == nil {
		return ExportJob{}, ErrExportQueueUnavailable
	}
	job := ExportJob{
		JobID:       uuid.NewString(),
		RequestedAt: time.Now().UTC(),
		Document:    e.Portfolio.Document(),
	}
	if err := e.Queue.PublishJSON(ctx, job); err != nil {
		if e.Logger != nil {
			e.Logger.WithError(err).WithField("job_id", job.JobID).Warn("failed to publish export job")
		}
		return ExportJob{}, fmt.Errorf("%w: %v", ErrExportQueueUnavailable, err)
	}
	return job, nil
}

// BuildBundle renders doc into a zip archive.
func BuildBundle(ctx context.Context, b *bundle.Builder, doc Document) ([]byte, error) {
	data, err := MarshalDocument(doc)
	if err != nil {
		return nil, err
	}
	in := bundle.Input{
		Content:  doc.Content,
		Sections: doc.SelectedSections,
		Document: data,
	}
	if doc.Theme != nil {
		in.Theme = *doc.Theme
	}
	return b.Build(ctx, in)
}

// BundleFileName mirrors ExportFileName for zip archives.
func BundleFileName(name string) string {
	return strings.TrimSuffix(ExportFileName(name), ".json") + ".zip"
}
