package application

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
	meminfra "github.com/oksasatya/go-portfolio-builder/internal/infrastructure/memory"
	"github.com/oksasatya/go-portfolio-builder/pkg/bundle"
	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
)

type recordingPublisher struct {
	bodies []any
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.bodies = append(p.bodies, body)
	return nil
}

func newExportService(t *testing.T, q JobPublisher) *ExportService {
	t.Helper()
	svc := newTestService(t, meminfra.NewStateRepository(nil, testNamespace))
	svc.UpdateSection(context.Background(), entity.HeroPatch{Name: strPtr("Ada Lovelace")})
	logger := helpers.NewDiscardLogger()
	return NewExportService(svc, bundle.NewBuilder(nil, logger), q, logger)
}

func TestExportServiceBundle(t *testing.T) {
	e := newExportService(t, nil)

	data, name, err := e.Bundle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace-portfolio.zip", name)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"index.html", "portfolio.json"}, names)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	var doc bytes.Buffer
	_, err = doc.ReadFrom(rc)
	require.NoError(t, err)
	parsed, err := ParseDocument(doc.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", parsed.Content.Hero.Name)
}

func TestExportServiceEnqueue(t *testing.T) {
	q := &recordingPublisher{}
	e := newExportService(t, q)

	job, err := e.EnqueueBundle(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, job.JobID)
	require.Len(t, q.bodies, 1)

	b, err := json.Marshal(q.bodies[0])
	require.NoError(t, err)
	var decoded ExportJob
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, job.JobID, decoded.JobID)
	assert.Equal(t, "Ada Lovelace", decoded.Document.Content.Hero.Name)
}

func TestExportServiceQueueUnavailable(t *testing.T) {
	_, err := newExportService(t, nil).EnqueueBundle(context.Background())
	assert.ErrorIs(t, err, ErrExportQueueUnavailable)

	_, err = newExportService(t, &recordingPublisher{err: errors.New("closed")}).EnqueueBundle(context.Background())
	assert.ErrorIs(t, err, ErrExportQueueUnavailable)
}
