package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

// objectWriter opens a writer for one object. *gcs.Client satisfies it through gcsWriter.
type objectWriter interface {
	NewWriter(ctx context.Context, bucket, name, contentType string) io.WriteCloser
}

type gcsWriter struct {
	client *gcs.Client
}

func (g gcsWriter) NewWriter(ctx context.Context, bucket, name, contentType string) io.WriteCloser {
	w := g.client.Bucket(bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

type implUploader struct {
	bucket string
	writer objectWriter
	now    func() time.Time
	logger logger.Logger
}

// New creates an Uploader backed by Google Cloud Storage. The returned close
// function releases the underlying client.
func New(ctx context.Context, bucket string, log logger.Logger, opts ...option.ClientOption) (Uploader, func() error, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create storage client: %w", err)
	}

	return newUploader(bucket, gcsWriter{client: client}, time.Now, log), client.Close, nil
}

func newUploader(bucket string, w objectWriter, now func() time.Time, log logger.Logger) *implUploader {
	return &implUploader{
		bucket: bucket,
		writer: w,
		now:    now,
		logger: log,
	}
}
