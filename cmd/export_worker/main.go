package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/config"
	"github.com/oksasatya/go-portfolio-builder/internal/application"
	"github.com/oksasatya/go-portfolio-builder/pkg/bundle"
	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
)

const jobTimeout = 2 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-export-worker", cfg.Env)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQExportQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.GCSBucket == "" {
		log.Fatal("GCS_BUCKET not configured")
	}

	ctx := context.Background()
	gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.Fatalf("gcs client: %v", err)
	}
	defer func() { _ = gcsClient.Close() }()
	uploader := helpers.NewGCSUploader(gcsClient, cfg.GCSBucket, "bundles")

	conn, ch, err := helpers.DialQueue(cfg.RabbitMQURL, cfg.RabbitMQExportQueue)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	// bundles download remote images, keep few in flight
	if err := ch.Qos(4, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQExportQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	w := &worker{
		builder:  bundle.NewBuilder(bundle.NewHTTPFetcher(cfg.BundleFetchTimeout), logger),
		uploader: uploader,
		logger:   logger,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for msg := range msgs {
			w.handle(ctx, msg)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQExportQueue).Info("export worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

type worker struct {
	builder  *bundle.Builder
	uploader application.ObjectUploader
	logger   *logrus.Logger
}

// handle renders one job and uploads the archive to bundles/<jobId>.zip.
// Malformed jobs are dropped; upload failures are requeued.
func (w *worker) handle(ctx context.Context, msg amqp.Delivery) {
	var job application.ExportJob
	if err := json.Unmarshal(msg.Body, &job); err != nil || uuid.Validate(job.JobID) != nil {
		w.logger.WithError(err).Warn("bad export message")
		_ = msg.Nack(false, false)
		return
	}
	entry := w.logger.WithField("job_id", job.JobID)

	c, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	// the queue is shared, so the document is validated again
	raw, err := application.MarshalDocument(job.Document)
	if err == nil {
		job.Document, err = application.ParseDocument(raw)
	}
	if err != nil {
		entry.WithError(err).Warn("export document rejected")
		_ = msg.Nack(false, false)
		return
	}

	zip, err := application.BuildBundle(c, w.builder, job.Document)
	if err != nil {
		entry.WithError(err).Error("render bundle failed")
		_ = msg.Nack(false, false)
		return
	}
	url, err := w.uploader.Upload(c, job.JobID+".zip", "application/zip", bytes.NewReader(zip))
	if err != nil {
		entry.WithError(err).Error("upload bundle failed")
		_ = msg.Nack(false, true)
		return
	}
	entry.WithFields(logrus.Fields{"url": url, "bytes": len(zip)}).Info("bundle exported")
	_ = msg.Ack(false)
}
